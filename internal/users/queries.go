package users

// Queries holds the SQL text for each store operation. Placeholders are
// written as ? and formatted by bun for the active dialect. Select
// statements must yield id, firstname and lastname; the insert statement
// must return the new id.
type Queries struct {
	FindAll    string
	Save       string
	DeleteByID string
	GetOne     string
	Update     string
}

// DefaultQueries returns the statements used when none are configured
func DefaultQueries() Queries {
	return Queries{
		FindAll:    "SELECT id, firstname, lastname FROM users ORDER BY id",
		Save:       "INSERT INTO users (firstname, lastname) VALUES (?, ?) RETURNING id",
		DeleteByID: "DELETE FROM users WHERE id = ?",
		GetOne:     "SELECT id, firstname, lastname FROM users WHERE id = ?",
		Update:     "UPDATE users SET firstname = ?, lastname = ? WHERE id = ?",
	}
}

// WithDefaults fills every empty statement from DefaultQueries
func (q Queries) WithDefaults() Queries {
	d := DefaultQueries()
	if q.FindAll == "" {
		q.FindAll = d.FindAll
	}
	if q.Save == "" {
		q.Save = d.Save
	}
	if q.DeleteByID == "" {
		q.DeleteByID = d.DeleteByID
	}
	if q.GetOne == "" {
		q.GetOne = d.GetOne
	}
	if q.Update == "" {
		q.Update = d.Update
	}
	return q
}
