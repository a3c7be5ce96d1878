package migration

import (
	"database/sql"
	"embed"

	migrate "github.com/rubenv/sql-migrate"
)

const dialect = "postgres"

//go:embed sql/*.sql
var files embed.FS

func source() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: files,
		Root:       "sql",
	}
}

// Up applies every pending migration and returns how many ran.
func Up(db *sql.DB) (int, error) {
	return migrate.Exec(db, dialect, source(), migrate.Up)
}

// Down rolls back at most steps migrations. Zero rolls back all of them.
func Down(db *sql.DB, steps int) (int, error) {
	return migrate.ExecMax(db, dialect, source(), migrate.Down, steps)
}

type Status struct {
	ID        string
	Applied   bool
	AppliedAt string
}

func List(db *sql.DB) ([]Status, error) {
	migrations, err := source().FindMigrations()
	if err != nil {
		return nil, err
	}

	records, err := migrate.GetMigrationRecords(db, dialect)
	if err != nil {
		return nil, err
	}
	applied := make(map[string]string, len(records))
	for _, record := range records {
		applied[record.Id] = record.AppliedAt.Format("2006-01-02 15:04:05")
	}

	statuses := make([]Status, len(migrations))
	for i, m := range migrations {
		appliedAt, ok := applied[m.Id]
		statuses[i] = Status{ID: m.Id, Applied: ok, AppliedAt: appliedAt}
	}
	return statuses, nil
}
