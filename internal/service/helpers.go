package service

import (
	"strings"

	"github.com/alexanderramin/aula/internal/catalog"
	"github.com/alexanderramin/aula/internal/domain"
	"github.com/alexanderramin/aula/internal/validate"
)

var inputs = validate.New()

// requireCoordinator guards every Term, Group and AcademicLoad mutation.
func requireCoordinator(actor domain.Actor, op string) error {
	if actor.IsCoordinator() {
		return nil
	}
	return domain.ErrForbidden.With("%s may not %s", roleOrAnonymous(actor), op)
}

func roleOrAnonymous(actor domain.Actor) string {
	if actor.Role == "" {
		return "anonymous actor"
	}
	return string(actor.Role)
}

// resolveCareer maps a career code or name to its canonical catalog code.
func resolveCareer(lookup catalog.Lookup, key string) (string, error) {
	c, ok := lookup.Career(strings.TrimSpace(key))
	if !ok {
		return "", domain.ErrUnknownCareer.With("career %q is not in the catalog", key)
	}
	return c.Code, nil
}

// resolveSubject returns the catalog spelling of subject under careerCode.
func resolveSubject(lookup catalog.Lookup, careerCode, subject string) (string, error) {
	s, ok := lookup.Subject(careerCode, strings.TrimSpace(subject))
	if !ok {
		return "", domain.ErrUnknownSubject.With("subject %q is not offered by %s", subject, careerCode)
	}
	return s.Name, nil
}
