package rbac

import (
	"sort"
	"sync"

	"go-staffhub/internal/authz"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadPolicy() error
	Enforce(req EnforceRequest) (bool, error)
	PermissionsFor(role string) (RolePermissionsResponse, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	loaded   bool
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l.Named("rbac.service"),
	}
}

func (s *service) LoadPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadPolicyUnlocked()
}

func (s *service) loadPolicyUnlocked() error {
	s.enforcer.ClearPolicy()

	inheritance, err := s.repo.GetRoleInheritance()
	if err != nil {
		return err
	}
	for _, ri := range inheritance {
		if _, err := s.enforcer.AddGroupingPolicy(ri.Role, ri.Parent); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions()
	if err != nil {
		return err
	}
	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.Role, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.loaded = true
	s.logger.Debug("rbac policy loaded",
		zap.Int("role_inheritance", len(inheritance)),
		zap.Int("role_permissions", len(rolePerms)),
	)
	return nil
}

// Enforce checks the effective role of req.Role, so unknown role tags get
// employee permissions.
func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.loadPolicyUnlocked(); err != nil {
			return false, err
		}
	}

	role := authz.EffectiveRole(req.Role)
	allowed, err := s.enforcer.Enforce(role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) PermissionsFor(role string) (RolePermissionsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.loadPolicyUnlocked(); err != nil {
			return RolePermissionsResponse{}, err
		}
	}

	effective := authz.EffectiveRole(role)
	perms, err := s.enforcer.GetImplicitPermissionsForUser(effective)
	if err != nil {
		return RolePermissionsResponse{}, err
	}

	out := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		if len(p) < 3 {
			continue
		}
		out = append(out, PermissionResponse{Resource: p[1], Action: p[2]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Resource != out[j].Resource {
			return out[i].Resource < out[j].Resource
		}
		return out[i].Action < out[j].Action
	})

	return RolePermissionsResponse{Role: effective, Permissions: out}, nil
}
