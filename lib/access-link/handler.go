package accesslink

import (
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	accesslinkstore "probation-eval-backend/lib/access-link/store"
	"probation-eval-backend/lib/evaluation/workflow"
	authutils "probation-eval-backend/lib/utils/auth-utils"
	"probation-eval-backend/models"
	evaluationapimodels "probation-eval-backend/models/api/evaluation"
	dbmodels "probation-eval-backend/models/db"
)

type Provider interface {
	Issue(evaluationID string, role models.UserRole) (evaluationapimodels.AccessLinkView, error)
	Resolve(token string) (*Claims, error)
	Consume(linkID string) error
}

var Instance Provider

type Config struct {
	Secret  string
	TTL     time.Duration
	BaseURL string // адрес фронта, ссылка ведет на /evaluation?token=...
}

func NewHandler(store accesslinkstore.Provider, cfg Config) {
	Instance = NewInstance(store, cfg)
}

func NewInstance(store accesslinkstore.Provider, cfg Config) Provider {
	return &impl{
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
}

type impl struct {
	store accesslinkstore.Provider
	cfg   Config
	now   func() time.Time
}

// Claims - содержимое ссылки доступа: одна запись и одна роль
type Claims struct {
	LinkID       string
	EvaluationID string
	Role         models.UserRole
	ExpiresAt    time.Time
}

func (i impl) getLogger(evaluationID string, role models.UserRole) *log.Entry {
	return log.
		WithField("evaluation_id", evaluationID).
		WithField("role", role)
}

func (i impl) Issue(evaluationID string, role models.UserRole) (evaluationapimodels.AccessLinkView, error) {
	if !role.IsSigner() {
		return evaluationapimodels.AccessLinkView{}, workflow.ValidationError("access link cannot be issued for %v", role)
	}
	now := i.now()
	rec := dbmodels.AccessLink{
		ID:           uuid.NewString(),
		EvaluationID: evaluationID,
		Role:         role,
		ExpiresAt:    now.Add(i.cfg.TTL),
	}
	token, err := authutils.SignClaims(i.cfg.Secret, jwt.MapClaims{
		"sub":  evaluationID,
		"role": string(role),
		"jti":  rec.ID,
		"typ":  authutils.TokenTypeAccessLink,
		"exp":  rec.ExpiresAt.Unix(),
		"iat":  now.Unix(),
	})
	if err != nil {
		return evaluationapimodels.AccessLinkView{}, errors.Wrap(err, "ошибка подписи ссылки доступа")
	}
	err = i.store.Create(rec)
	if err != nil {
		return evaluationapimodels.AccessLinkView{}, workflow.TransportError(err, "failed to store access link")
	}
	i.getLogger(evaluationID, role).Info("выдана ссылка доступа")
	return evaluationapimodels.AccessLinkView{
		Token:     token,
		URL:       i.linkURL(token),
		Role:      role,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

func (i impl) linkURL(token string) string {
	return i.cfg.BaseURL + "/evaluation?token=" + url.QueryEscape(token)
}

func (i impl) Resolve(token string) (*Claims, error) {
	mapClaims, err := authutils.ParseClaims(i.cfg.Secret, token, authutils.TokenTypeAccessLink)
	if err != nil {
		return nil, workflow.AuthorizationError("access link is invalid or expired")
	}
	claims := &Claims{}
	claims.LinkID, _ = mapClaims["jti"].(string)
	claims.EvaluationID, _ = mapClaims["sub"].(string)
	role, _ := mapClaims["role"].(string)
	claims.Role = models.UserRole(role)
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if claims.LinkID == "" || claims.EvaluationID == "" || !claims.Role.IsSigner() {
		return nil, workflow.AuthorizationError("access link is invalid or expired")
	}
	rec, err := i.store.GetByID(claims.LinkID)
	if err != nil {
		return nil, workflow.TransportError(err, "failed to load access link")
	}
	if rec == nil || rec.EvaluationID != claims.EvaluationID || rec.Role != claims.Role {
		return nil, workflow.AuthorizationError("access link is invalid or expired")
	}
	if !rec.IsActive(i.now()) {
		return nil, workflow.AuthorizationError("access link has already been used")
	}
	return claims, nil
}

func (i impl) Consume(linkID string) error {
	ok, err := i.store.Consume(linkID, i.now())
	if err != nil {
		return workflow.TransportError(err, "failed to consume access link")
	}
	if !ok {
		return workflow.AuthorizationError("access link has already been used")
	}
	return nil
}
