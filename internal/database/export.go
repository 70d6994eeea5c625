package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cupid-development/goodix-cfg-bin/internal/gtx8"
)

// exportDDL creates the export tables. One row per decoded file, one per
// package, and one per IC config payload (kept separate so the blobs don't
// weigh down package scans).
const exportDDL = `
CREATE TABLE IF NOT EXISTS files (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	path        TEXT    NOT NULL,
	bin_len     INTEGER NOT NULL,
	checksum    INTEGER NOT NULL,
	bin_version TEXT    NOT NULL,
	pkg_num     INTEGER NOT NULL,
	decoded_at  TEXT    NOT NULL
);

CREATE TABLE IF NOT EXISTS packages (
	file_id        INTEGER NOT NULL REFERENCES files(id),
	pkg_index      INTEGER NOT NULL,
	cfg_type       INTEGER NOT NULL,
	sensor_id      INTEGER NOT NULL,
	ic_type        TEXT    NOT NULL,
	pkg_len        INTEGER NOT NULL,
	cfg_len        INTEGER NOT NULL,
	x_res_offset   INTEGER NOT NULL,
	y_res_offset   INTEGER NOT NULL,
	trigger_offset INTEGER NOT NULL,
	PRIMARY KEY (file_id, pkg_index)
);

CREATE TABLE IF NOT EXISTS ic_configs (
	file_id   INTEGER NOT NULL REFERENCES files(id),
	pkg_index INTEGER NOT NULL,
	cfg_type  INTEGER NOT NULL,
	len       INTEGER NOT NULL,
	data      BLOB    NOT NULL,
	PRIMARY KEY (file_id, pkg_index)
);
`

// Exporter writes decoded cfg group files into an export database.
type Exporter struct {
	db *Database
}

// NewExporter returns an exporter over db.
func NewExporter(db *Database) *Exporter {
	return &Exporter{db: db}
}

// EnsureSchema creates the export tables if they don't exist.
func (e *Exporter) EnsureSchema(ctx context.Context) error {
	if _, err := e.db.Exec(ctx, exportDDL); err != nil {
		return fmt.Errorf("creating export tables: %w", err)
	}
	return nil
}

// ExportFile inserts one decoded cfg group file and all of its packages in a
// single transaction. Returns the number of package rows written.
func (e *Exporter) ExportFile(ctx context.Context, path string, cfg *gtx8.CfgBin) (int, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO files (path, bin_len, checksum, bin_version, pkg_num, decoded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		path, cfg.Head.BinLen, cfg.Head.Checksum, cfg.Head.Version(), cfg.Head.PkgNum,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("inserting file row for %s: %w", path, err)
	}

	fileID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolving file id: %w", err)
	}

	pkgStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO packages (file_id, pkg_index, cfg_type, sensor_id, ic_type, pkg_len, cfg_len,
		                       x_res_offset, y_res_offset, trigger_offset)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing package insert: %w", err)
	}
	defer pkgStmt.Close()

	icStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ic_configs (file_id, pkg_index, cfg_type, len, data) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing ic config insert: %w", err)
	}
	defer icStmt.Close()

	for i := range cfg.Packages {
		p := &cfg.Packages[i]

		if _, err := pkgStmt.ExecContext(ctx,
			fileID, i, p.CfgType, p.SensorID, p.ICType, p.Span, len(p.Config),
			p.XResOffset, p.YResOffset, p.TriggerOffset); err != nil {
			return 0, fmt.Errorf("inserting package %d: %w", i, err)
		}

		if _, err := icStmt.ExecContext(ctx,
			fileID, i, p.CfgType, len(p.Config), p.Config); err != nil {
			return 0, fmt.Errorf("inserting ic config %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing export of %s: %w", path, err)
	}
	return len(cfg.Packages), nil
}
