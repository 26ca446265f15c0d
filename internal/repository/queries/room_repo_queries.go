package queries

const (
	QueryCreateRoom = `
		INSERT INTO rooms (host_id, topic_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`

	querySelectRoom = `
		SELECT r.id, r.host_id, r.topic_id, t.name, u.username,
		       r.name, r.description, r.created_at, r.updated_at
		FROM rooms r
		JOIN topics t ON t.id = r.topic_id
		JOIN users u ON u.id = r.host_id
	`

	QueryGetRoomByID = querySelectRoom + `
		WHERE r.id = $1;
	`
	QuerySearchRooms = querySelectRoom + `
		WHERE t.name ILIKE '%' || $1 || '%'
		   OR r.name ILIKE '%' || $1 || '%'
		   OR r.description ILIKE '%' || $1 || '%'
		ORDER BY r.created_at DESC, r.id DESC;
	`
	QueryListRoomsByHost = querySelectRoom + `
		WHERE r.host_id = $1
		ORDER BY r.created_at DESC, r.id DESC;
	`

	// host_id не обновляется: хост неизменяем после создания.
	QueryUpdateRoom = `
		UPDATE rooms
		SET topic_id = $2, name = $3, description = $4, updated_at = $5
		WHERE id = $1;
	`
	QueryDeleteRoom = `DELETE FROM rooms WHERE id = $1;`

	QueryAddParticipant = `
		INSERT INTO room_participants (room_id, user_id, joined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING;
	`
	QueryListParticipantsByRoom = `
		SELECT p.room_id, p.user_id, u.username, p.joined_at
		FROM room_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.room_id = $1
		ORDER BY p.joined_at ASC;
	`
)
