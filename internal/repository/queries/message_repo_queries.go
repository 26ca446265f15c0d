package queries

const (
	QueryCreateMessage = `
		INSERT INTO messages (room_id, user_id, body, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`

	querySelectMessage = `
		SELECT m.id, m.room_id, m.user_id, u.username, r.name, m.body, m.created_at
		FROM messages m
		JOIN users u ON u.id = m.user_id
		JOIN rooms r ON r.id = m.room_id
	`

	QueryGetMessageByID = querySelectMessage + `
		WHERE m.id = $1;
	`
	QueryListMessagesByRoom = querySelectMessage + `
		WHERE m.room_id = $1
		ORDER BY m.created_at DESC, m.id DESC;
	`
	QueryListMessagesByUser = querySelectMessage + `
		WHERE m.user_id = $1
		ORDER BY m.created_at DESC, m.id DESC;
	`
	QueryListMessagesByTopicQuery = querySelectMessage + `
		JOIN topics t ON t.id = r.topic_id
		WHERE t.name ILIKE '%' || $1 || '%'
		ORDER BY m.created_at DESC, m.id DESC;
	`
	QueryListAllMessages = querySelectMessage + `
		ORDER BY m.created_at DESC, m.id DESC;
	`

	QueryDeleteMessage = `DELETE FROM messages WHERE id = $1;`
)
