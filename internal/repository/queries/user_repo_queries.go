package queries

const (
	QueryCreateUser = `
		INSERT INTO users (username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	QueryGetUserByID = `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1;
	`
	QueryGetUserByUsername = `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1;
	`
	QueryUpdateUserProfile = `
		UPDATE users
		SET username = $2, email = $3, updated_at = $4
		WHERE id = $1;
	`
)
