package domain

// Vehicle is a shared pool resource (car, van, pool bike). Multiple
// employees may point at the same vehicle; the ref is a display hint, not a
// lock.
type Vehicle struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Department is seeded from the distinct department labels present on the
// roster. Employee.Department stays denormalized text; this set only feeds
// pickers on the admin page.
type Department struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
