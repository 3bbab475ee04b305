package favicon

import (
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Exact page URL matches win over prefix matches; within each, the widest
// and then most recently updated bitmap is picked.
const lookupQuery = `
	SELECT fb.image_data
	FROM icon_mapping im
	JOIN favicon_bitmaps fb ON im.icon_id = fb.icon_id
	WHERE im.page_url = ? OR im.page_url LIKE ? ESCAPE '\'
	ORDER BY CASE WHEN im.page_url = ? THEN 0 ELSE 1 END,
		fb.width DESC,
		fb.last_updated DESC
	LIMIT 1
`

// snapshot is a private read-only copy of the favicon database. The live
// file may be locked by the browser.
type snapshot struct {
	db   *sql.DB
	path string
}

func openSnapshot(src string) (*snapshot, error) {
	path := filepath.Join(os.TempDir(), "chromemarks-favicons-"+uuid.NewString()+".db")
	if err := copyFile(src, path); err != nil {
		os.Remove(path)
		return nil, err
	}

	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(path)+"?mode=ro&immutable=1")
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	return &snapshot{db: db, path: path}, nil
}

// lookup returns the image bytes for url, or nil if no row matches.
func (s *snapshot) lookup(url string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(lookupQuery, url, escapeLike(url)+"%", url).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Close closes the database and deletes the copy.
func (s *snapshot) Close() error {
	err := s.db.Close()
	if rmErr := os.Remove(s.path); rmErr != nil && err == nil {
		err = rmErr
	}
	return err
}

// escapeLike escapes LIKE wildcards so s only matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
