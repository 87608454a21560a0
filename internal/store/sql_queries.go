package store

const (
	// Placeholders are written $N in appearance order so the same text binds
	// positionally under both pgx and sqlite3.
	recordPrice = `INSERT INTO price_history (symbol, price, change_24h, change_7d, source, recorded_at)
    VALUES ($1, $2, $3, $4, $5, $6);`

	getHistory = `SELECT symbol, price, change_24h, change_7d, source, recorded_at
    FROM price_history
    WHERE symbol = $1
    ORDER BY recorded_at DESC
    LIMIT $2;`
)
