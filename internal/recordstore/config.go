package recordstore

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Config picks the database a Store writes to, a local sqlite file unless
// Url names a remote libsql server.
type Config struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func (c Config) Enabled() bool {
	return c.File != "" || c.Url != ""
}

func (c Config) OpenDB() (*sql.DB, error) {
	if c.Url != "" {
		values := url.Values{}
		if c.AuthToken != "" {
			values.Add("authToken", c.AuthToken)
		}
		return sql.Open("libsql", c.Url+"?"+values.Encode())
	}
	if c.File == "" {
		return nil, fmt.Errorf("neither a file nor a url was specified")
	}

	if c.File != ":memory:" {
		_, statErr := os.Stat(c.File)
		if os.IsNotExist(statErr) {
			f, err := os.Create(c.File)
			if err != nil {
				return nil, err
			}
			f.Close()
		}
	}

	db, err := sql.Open("sqlite", c.File)
	if err != nil {
		return nil, err
	}
	// sqlite only allows a single writer at a time, batch workers would
	// otherwise contend on SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
