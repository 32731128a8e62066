package users

// User represents a person record managed through the web pages
type User struct {
	ID        int64  `json:"id" form:"id"`
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
}

// UserURI binds the {id} path segment of the delete and update-form routes
type UserURI struct {
	ID int64 `uri:"id"`
}
