package discord

type Guild struct {
	ID      string
	Name    string
	OwnerID string
}

type Role struct {
	ID          string
	Name        string
	Mentionable bool
	Permissions uint64
	Position    int
}

type Member struct {
	ID    string
	Bot   bool
	Roles []string
}

type User struct {
	ID       string
	Username string
	Bot      bool
}

type EmbedField struct {
	Name  string
	Value string
}

type Embed struct {
	Description string
	Fields      []EmbedField
}
