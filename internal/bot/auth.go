package bot

// Authorizer decides whether a caller may invoke privileged commands.
type Authorizer interface {
	IsAdmin(telegramID int64) bool
}

// AdminList authorizes a fixed allowlist of Telegram user ids.
type AdminList struct {
	ids map[int64]struct{}
}

func NewAdminList(ids []int64) *AdminList {
	m := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return &AdminList{ids: m}
}

func (a *AdminList) IsAdmin(telegramID int64) bool {
	_, ok := a.ids[telegramID]
	return ok
}
