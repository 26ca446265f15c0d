package queries

const (
	// Upsert опирается на UNIQUE(name); DO UPDATE вместо DO NOTHING,
	// чтобы RETURNING отдавал строку и для уже существующего топика.
	QueryUpsertTopic = `
		INSERT INTO topics (name, created_at)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, created_at;
	`
	QueryListTopics = `
		SELECT t.id, t.name, t.created_at, COUNT(r.id) AS room_count
		FROM topics t
		LEFT JOIN rooms r ON r.topic_id = t.id
		WHERE t.name ILIKE '%' || $1 || '%'
		GROUP BY t.id, t.name, t.created_at
		ORDER BY t.name;
	`
)
