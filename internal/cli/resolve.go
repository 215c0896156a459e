package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/aula/internal/domain"
	"github.com/alexanderramin/aula/internal/repository"
)

// candidate pairs a record id with an optional human alias such as a
// group's generated name or a user's email.
type candidate struct {
	id    string
	alias string
}

// matchID resolves input against candidates:
//  1. exact alias (case-insensitive)
//  2. exact id
//  3. unique id prefix
//
// Misses fall through unchanged so the service reports its own NotFound.
func matchID(input string, candidates []candidate) (string, error) {
	for _, c := range candidates {
		if c.alias != "" && strings.EqualFold(c.alias, input) {
			return c.id, nil
		}
	}
	for _, c := range candidates {
		if c.id == input {
			return c.id, nil
		}
	}

	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(c.id, input) {
			matches = append(matches, c.id)
		}
	}
	switch len(matches) {
	case 0:
		return input, nil
	case 1:
		return matches[0], nil
	default:
		return "", domain.ErrInvalidInput.With("id prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func resolveTermID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", nil
	}
	terms, err := app.Terms.List(ctx)
	if err != nil {
		return "", err
	}
	cs := make([]candidate, 0, len(terms))
	for _, t := range terms {
		cs = append(cs, candidate{id: t.ID})
	}
	return matchID(input, cs)
}

// resolveGroupID accepts a group id, id prefix or generated name (e.g. TIDS1-1).
func resolveGroupID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", nil
	}
	groups, err := app.Groups.List(ctx, repository.GroupFilter{})
	if err != nil {
		return "", err
	}
	cs := make([]candidate, 0, len(groups))
	for _, g := range groups {
		cs = append(cs, candidate{id: g.ID, alias: g.GeneratedName})
	}
	return matchID(input, cs)
}

func resolveLoadID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", nil
	}
	loads, err := app.Loads.List(ctx, repository.LoadFilter{})
	if err != nil {
		return "", err
	}
	cs := make([]candidate, 0, len(loads))
	for _, l := range loads {
		cs = append(cs, candidate{id: l.ID})
	}
	return matchID(input, cs)
}

// resolveUserID accepts a user id, id prefix or email.
func resolveUserID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", nil
	}
	users, err := app.Users.List(ctx)
	if err != nil {
		return "", err
	}
	cs := make([]candidate, 0, len(users))
	for _, u := range users {
		cs = append(cs, candidate{id: u.ID, alias: u.Email})
	}
	return matchID(input, cs)
}

// resolveHeaderID only sees headers the actor may list.
func resolveHeaderID(ctx context.Context, app *App, actor domain.Actor, input string) (string, error) {
	if input == "" {
		return "", nil
	}
	headers, err := app.Progress.ListHeaders(ctx, actor, repository.HeaderFilter{})
	if err != nil {
		return input, nil
	}
	cs := make([]candidate, 0, len(headers))
	for _, h := range headers {
		cs = append(cs, candidate{id: h.ID})
	}
	return matchID(input, cs)
}
