package model

// GuestMessage is a row submitted via the public contact form.
//
// Name, Email and Gender are a denormalized snapshot of the submitter's
// profile at submission time (or the form fields for anonymous submissions),
// not a foreign key. Rows are created on submission and only ever removed by
// an admin delete; there is no update path.
type GuestMessage struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Gender  string `json:"gender"`
	Message string `json:"message"`
}
