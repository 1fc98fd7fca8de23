package store

const (
	createUser = `INSERT INTO users (username, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING user_id, username, email, password_hash, created_at;`

	findUserByUsername = `SELECT user_id, username, email, password_hash, created_at
    FROM users
    WHERE username = $1;`

	findUserByID = `SELECT user_id, username, email, password_hash, created_at
    FROM users
    WHERE user_id = $1;`

	updateUserProfile = `UPDATE users
    SET username = $1, email = $2
    WHERE user_id = $3
    RETURNING user_id, username, email, password_hash, created_at;`

	updateUserPassword = `UPDATE users
    SET password_hash = $1
    WHERE user_id = $2;`

	createStudent = `INSERT INTO students (first_name, last_name, email, phone, gender, profile_pic, user_id)
    VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
    RETURNING student_id, first_name, last_name, email, phone, gender, COALESCE(profile_pic, ''), user_id;`

	findStudentByID = `SELECT student_id, first_name, last_name, email, phone, gender, COALESCE(profile_pic, ''), user_id
    FROM students
    WHERE student_id = $1 AND user_id = $2;`

	deleteStudent = `DELETE FROM students
    WHERE student_id = $1 AND user_id = $2
    RETURNING COALESCE(profile_pic, '');`
)
