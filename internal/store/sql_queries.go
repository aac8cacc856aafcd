package store

const (
	createUser = `INSERT INTO users (id, fingerprint, wrapped_key, wrapped_key_hmac, algorithm, auth_words_hash, hmac_words_hash, verifier, email)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING id, fingerprint, wrapped_key, wrapped_key_hmac, algorithm, auth_words_hash, hmac_words_hash, verifier, email, created_at;`

	findUserByID = `SELECT id, fingerprint, wrapped_key, wrapped_key_hmac, algorithm, auth_words_hash, hmac_words_hash, verifier, email, created_at
    FROM users
    WHERE id = $1;`

	findUserByFingerprint = `SELECT id, fingerprint, wrapped_key, wrapped_key_hmac, algorithm, auth_words_hash, hmac_words_hash, verifier, email, created_at
    FROM users
    WHERE fingerprint = $1;`

	createDevice = `INSERT INTO totp_devices (user_id, secret, confirmed, last_counter)
    VALUES ($1, $2, $3, $4)
    RETURNING device_id, user_id, secret, confirmed, last_counter, created_at;`

	findDeviceByUser = `SELECT device_id, user_id, secret, confirmed, last_counter, created_at
    FROM totp_devices
    WHERE user_id = $1;`

	updateDeviceCounter = `UPDATE totp_devices
    SET confirmed = TRUE, last_counter = $2
    WHERE device_id = $1 AND last_counter < $2;`

	listItems = `SELECT item_id, name, created_at, updated_at
    FROM vault_items
    WHERE user_id = $1
    ORDER BY updated_at DESC;`

	createItem = `INSERT INTO vault_items (item_id, user_id, encrypted_data, name)
    VALUES ($1, $2, $3, $4)
    RETURNING item_id, user_id, encrypted_data, name, created_at, updated_at;`

	getItem = `SELECT item_id, user_id, encrypted_data, name, created_at, updated_at
    FROM vault_items
    WHERE item_id = $1 AND user_id = $2;`

	deleteItem = `DELETE FROM vault_items
    WHERE item_id = $1 AND user_id = $2;`
)
