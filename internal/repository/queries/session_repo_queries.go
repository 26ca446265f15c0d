package queries

const (
	QueryCreateSession = `
		INSERT INTO sessions (
			user_id, token_hash, expires_at, created_at, updated_at, user_agent, ip
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`
	QueryGetSessionByTokenHash = `
		SELECT
			id, user_id, token_hash, expires_at, created_at, updated_at,
			user_agent,
			CASE WHEN ip IS NULL THEN NULL ELSE ip::text END AS ip_text
		FROM sessions
		WHERE token_hash = $1
		LIMIT 1;
	`
	QueryDeleteSessionByID           = `DELETE FROM sessions WHERE id = $1;`
	QueryDeleteSessionsByUser        = `DELETE FROM sessions WHERE user_id = $1;`
	QueryDeleteSessionsExpiredByTime = `DELETE FROM sessions WHERE expires_at <= $1;`
)
