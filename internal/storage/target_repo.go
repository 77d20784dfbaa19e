package storage

// TargetRepo stores countdown targets as plain timestamp strings.
type TargetRepo struct {
	db *DB
}

// NewTargetRepo creates a new target repository.
func NewTargetRepo(db *DB) *TargetRepo {
	return &TargetRepo{db: db}
}

// Get returns the value stored under key. The boolean is false when the key
// has never been written.
func (r *TargetRepo) Get(key string) (string, bool, error) {
	data, err := r.db.GetBytes(key)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Set stores value under key.
func (r *TargetRepo) Set(key, value string) error {
	return r.db.SetBytes(key, []byte(value))
}

// Exists reports whether a value is stored under key.
func (r *TargetRepo) Exists(key string) (bool, error) {
	return r.db.Exists(key)
}

// Delete removes the value stored under key. Deleting a missing key is not an error.
func (r *TargetRepo) Delete(key string) error {
	return r.db.Delete(key)
}
