package formatter

import "github.com/alexanderramin/aula/internal/domain"

func FormatUserList(users []*domain.User) string {
	headers := []string{"ID", "NAME", "EMAIL", "ROLE", "STATUS"}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			TruncID(u.ID),
			Bold(u.Name),
			u.Email,
			RoleBadge(u.Role),
			ActiveBadge(u.Active),
		})
	}
	return RenderBox("Users", RenderTable(headers, rows))
}

func FormatUser(u *domain.User) string {
	return RenderBox(u.Name, keyValues([][2]string{
		{"ID", u.ID},
		{"Email", u.Email},
		{"Role", RoleBadge(u.Role)},
		{"Status", ActiveBadge(u.Active)},
	}))
}
