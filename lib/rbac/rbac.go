package rbac

import (
	"regexp"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"probation-eval-backend/models"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
)

type patternRule struct {
	pattern *regexp.Regexp
	handler models.RbacFunc
}

// pathRule - сначала точные пути, потом шаблоны с параметрами
type pathRule struct {
	exact    map[string]models.RbacFunc
	patterns []patternRule
}

type Provider interface {
	// Check - маршрут без правила запрещен
	Check(method, path, userName string, role models.UserRole) bool
	GetRuleFunc(method, path string) (models.RbacFunc, bool)
	RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance()
}

func NewInstance() Provider {
	i := &impl{
		rules:       map[HTTPMethod]*pathRule{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	i.initRules()
	return i
}

type impl struct {
	rules       map[HTTPMethod]*pathRule
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

func (i *impl) Check(method, path, userName string, role models.UserRole) bool {
	handler, found := i.GetRuleFunc(method, path)
	if !found {
		return false
	}
	return handler(userName, role, normalizePath(path))
}

func (i *impl) GetRuleFunc(method, path string) (models.RbacFunc, bool) {
	rule, exists := i.rules[HTTPMethod(strings.ToUpper(method))]
	if !exists {
		return nil, false
	}
	path = normalizePath(path)
	if handler, found := rule.exact[path]; found {
		return handler, true
	}
	for _, item := range rule.patterns {
		if item.pattern.MatchString(path) {
			return item.handler, true
		}
	}
	return nil, false
}

func (i *impl) RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error {
	path, method, err := parseSwaggerPattern(swaggerPattern)
	if err != nil {
		return err
	}

	// права для фронта
	for _, role := range roles {
		if _, ok := i.permissions[role]; !ok {
			i.permissions[role] = map[models.Module][]models.Permission{}
		}
		if slices.Contains(i.permissions[role][module], permission) {
			continue
		}
		i.permissions[role][module] = append(i.permissions[role][module], permission)
	}

	if handler == nil {
		handler = AllowByRoleFunc(roles)
	}
	rule, exists := i.rules[method]
	if !exists {
		rule = &pathRule{exact: map[string]models.RbacFunc{}}
		i.rules[method] = rule
	}
	if !strings.Contains(path, "{") {
		rule.exact[path] = handler
		return nil
	}
	rule.patterns = append(rule.patterns, patternRule{
		pattern: pathToRegex(path),
		handler: handler,
	})
	return nil
}

func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	return i.permissions[role]
}

var paramRe = regexp.MustCompile(`\\\{[^}]+?\\\}`)

// pathToRegex - {param} совпадает с одним сегментом пути
func pathToRegex(path string) *regexp.Regexp {
	pattern := paramRe.ReplaceAllString(regexp.QuoteMeta(path), `([^/]+)`)
	return regexp.MustCompile("^" + pattern + "$")
}

func AllowByRoleFunc(accessRoles []models.UserRole) models.RbacFunc {
	allowMap := map[models.UserRole]bool{}
	for _, role := range accessRoles {
		allowMap[role] = true
	}
	return func(userName string, role models.UserRole, uri string) bool {
		return allowMap[role]
	}
}

// parseSwaggerPattern разбирает строку вида "/api/v1/evaluation/{id} [get]"
func parseSwaggerPattern(pattern string) (path string, method HTTPMethod, err error) {
	pattern = strings.TrimSpace(pattern)
	bracketStart := strings.LastIndex(pattern, "[")
	bracketEnd := strings.LastIndex(pattern, "]")
	if bracketStart == -1 || bracketEnd <= bracketStart {
		return "", "", errors.Errorf("Method not provided for pattern (%v)", pattern)
	}
	path = normalizePath(strings.TrimSpace(pattern[:bracketStart]))
	method = HTTPMethod(strings.ToUpper(strings.TrimSpace(pattern[bracketStart+1 : bracketEnd])))
	return path, method, nil
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
