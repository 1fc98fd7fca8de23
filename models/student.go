package models

// Genders accepted by the Student.Gender field. The same set is enforced
// by a CHECK constraint on the students table.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Student represents a single student record. Every record belongs to
// exactly one account (UserID); it is visible and mutable only through
// requests authenticated as that owner.
type Student struct {
	// StudentID is the internal unique identifier of the record.
	StudentID int64 `json:"id"`

	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`

	// Gender is one of Male, Female, Other.
	Gender string `json:"gender" validate:"required,oneof=Male Female Other"`

	// ProfilePic is the object-store URL of the profile image,
	// empty when no image was uploaded.
	ProfilePic string `json:"profile_pic,omitempty"`

	// UserID is the owner account. It is stamped server-side from the
	// authenticated principal and is immutable after creation; any
	// owner-like value supplied by a client is ignored.
	UserID int64 `json:"user_id"`
}

// TableName returns the name of the database table
// associated with the Student model.
func (s Student) TableName() string {
	return "students"
}

// StudentUpdate carries the mutable fields of a student record for
// partial updates. Nil pointers mean "leave unchanged".
type StudentUpdate struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	Gender     *string
	ProfilePic *string
}

// StudentFilter narrows a scoped listing. Search is matched
// case-insensitively against first and last names.
type StudentFilter struct {
	Search string
	Page   int
	Limit  int
}
