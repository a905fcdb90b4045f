package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muellerzr/huggingface-hub/hub"
	"github.com/muellerzr/huggingface-hub/internal/mirror"
)

type store struct {
	pool *pgxpool.Pool
}

// NewStore returns a mirror store backed by Postgres.
func NewStore(pool *pgxpool.Pool) mirror.Store {
	return &store{pool: pool}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS mirror_model (
		id            TEXT PRIMARY KEY,
		author        TEXT NOT NULL DEFAULT '',
		sha           TEXT NOT NULL DEFAULT '',
		last_modified TIMESTAMPTZ NOT NULL DEFAULT 'epoch',
		private       BOOLEAN NOT NULL DEFAULT FALSE,
		downloads     BIGINT NOT NULL DEFAULT 0,
		likes         BIGINT NOT NULL DEFAULT 0,
		library_name  TEXT NOT NULL DEFAULT '',
		pipeline_tag  TEXT NOT NULL DEFAULT '',
		tags          TEXT[] NOT NULL DEFAULT '{}',
		siblings      JSONB,
		config        JSONB,
		card_data     JSONB,
		synced_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mirror_model_tags ON mirror_model USING GIN (tags)`,
	`CREATE INDEX IF NOT EXISTS idx_mirror_model_downloads ON mirror_model (downloads DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_mirror_model_author ON mirror_model (author)`,
	`CREATE TABLE IF NOT EXISTS mirror_dataset (
		id            TEXT PRIMARY KEY,
		author        TEXT NOT NULL DEFAULT '',
		sha           TEXT NOT NULL DEFAULT '',
		last_modified TIMESTAMPTZ NOT NULL DEFAULT 'epoch',
		private       BOOLEAN NOT NULL DEFAULT FALSE,
		downloads     BIGINT NOT NULL DEFAULT 0,
		likes         BIGINT NOT NULL DEFAULT 0,
		description   TEXT NOT NULL DEFAULT '',
		citation      TEXT NOT NULL DEFAULT '',
		tags          TEXT[] NOT NULL DEFAULT '{}',
		siblings      JSONB,
		card_data     JSONB,
		synced_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mirror_dataset_tags ON mirror_dataset USING GIN (tags)`,
	`CREATE TABLE IF NOT EXISTS mirror_tag (
		repo_type TEXT NOT NULL,
		facet     TEXT NOT NULL,
		id        TEXT NOT NULL,
		label     TEXT NOT NULL,
		PRIMARY KEY (repo_type, facet, id)
	)`,
	`CREATE TABLE IF NOT EXISTS mirror_state (
		id        INT PRIMARY KEY CHECK (id = 1),
		last_sync TIMESTAMPTZ NOT NULL,
		models    INT NOT NULL,
		datasets  INT NOT NULL,
		tags      INT NOT NULL
	)`,
}

func (s *store) Init(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init mirror schema: %w", err)
		}
	}
	return nil
}

func (s *store) UpsertModels(ctx context.Context, models []*hub.ModelInfo) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin upsert models: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO mirror_model
			(id, author, sha, last_modified, private, downloads, likes,
			 library_name, pipeline_tag, tags, siblings, config, card_data, synced_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,NOW())
		ON CONFLICT (id) DO UPDATE SET
			author = EXCLUDED.author, sha = EXCLUDED.sha,
			last_modified = EXCLUDED.last_modified, private = EXCLUDED.private,
			downloads = EXCLUDED.downloads, likes = EXCLUDED.likes,
			library_name = EXCLUDED.library_name, pipeline_tag = EXCLUDED.pipeline_tag,
			tags = EXCLUDED.tags, siblings = EXCLUDED.siblings,
			config = EXCLUDED.config, card_data = EXCLUDED.card_data,
			synced_at = NOW()
	`

	for _, m := range models {
		id := m.RepoID()
		if id == "" {
			continue
		}
		siblingsJSON, err := marshalOrNil(m.Siblings)
		if err != nil {
			return fmt.Errorf("marshal siblings for %s: %w", id, err)
		}
		tags := m.Tags
		if tags == nil {
			tags = []string{}
		}
		_, err = tx.Exec(ctx, query,
			id, authorOf(id, m.Author), m.SHA, m.LastModified, m.Private,
			m.Downloads, m.Likes, m.LibraryName, m.PipelineTag,
			tags, siblingsJSON, rawOrNil(m.Config), rawOrNil(m.CardData),
		)
		if err != nil {
			return fmt.Errorf("upsert model %s: %w", id, err)
		}
	}
	return tx.Commit(ctx)
}

func (s *store) UpsertDatasets(ctx context.Context, datasets []*hub.DatasetInfo) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin upsert datasets: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO mirror_dataset
			(id, author, sha, last_modified, private, downloads, likes,
			 description, citation, tags, siblings, card_data, synced_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,NOW())
		ON CONFLICT (id) DO UPDATE SET
			author = EXCLUDED.author, sha = EXCLUDED.sha,
			last_modified = EXCLUDED.last_modified, private = EXCLUDED.private,
			downloads = EXCLUDED.downloads, likes = EXCLUDED.likes,
			description = EXCLUDED.description, citation = EXCLUDED.citation,
			tags = EXCLUDED.tags, siblings = EXCLUDED.siblings,
			card_data = EXCLUDED.card_data, synced_at = NOW()
	`

	for _, d := range datasets {
		if d.ID == "" {
			continue
		}
		siblingsJSON, err := marshalOrNil(d.Siblings)
		if err != nil {
			return fmt.Errorf("marshal siblings for %s: %w", d.ID, err)
		}
		tags := d.Tags
		if tags == nil {
			tags = []string{}
		}
		_, err = tx.Exec(ctx, query,
			d.ID, authorOf(d.ID, d.Author), d.SHA, d.LastModified, d.Private,
			d.Downloads, d.Likes, d.Description, d.Citation,
			tags, siblingsJSON, rawOrNil(d.CardData),
		)
		if err != nil {
			return fmt.Errorf("upsert dataset %s: %w", d.ID, err)
		}
	}
	return tx.Commit(ctx)
}

func (s *store) ReplaceTags(ctx context.Context, repoType string, tags []mirror.Tag) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace tags: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM mirror_tag WHERE repo_type = $1`, repoType); err != nil {
		return fmt.Errorf("clear %s tags: %w", repoType, err)
	}
	for _, t := range tags {
		_, err := tx.Exec(ctx,
			`INSERT INTO mirror_tag (repo_type, facet, id, label) VALUES ($1,$2,$3,$4)
			 ON CONFLICT (repo_type, facet, id) DO UPDATE SET label = EXCLUDED.label`,
			repoType, t.Facet, t.ID, t.Label,
		)
		if err != nil {
			return fmt.Errorf("insert tag %s/%s: %w", t.Facet, t.ID, err)
		}
	}
	return tx.Commit(ctx)
}

const modelColumns = `id, author, sha, last_modified, private, downloads, likes,
	library_name, pipeline_tag, tags, siblings, config, card_data`

func (s *store) SearchModels(ctx context.Context, q mirror.Query) ([]*hub.ModelInfo, error) {
	where, args, argPos := searchConditions(q)

	query := fmt.Sprintf(`
		SELECT %s FROM mirror_model
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, modelColumns, where, orderClause(q), argPos, argPos+1)
	args = append(args, q.Limit, q.Offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search models: %w", err)
	}
	defer rows.Close()

	var models []*hub.ModelInfo
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan model row: %w", err)
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate model rows: %w", err)
	}
	return models, nil
}

func (s *store) GetModel(ctx context.Context, id string) (*hub.ModelInfo, error) {
	query := fmt.Sprintf(`SELECT %s FROM mirror_model WHERE id = $1`, modelColumns)
	m, err := scanModel(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, mirror.ErrModelNotFound
		}
		return nil, fmt.Errorf("get model: %w", err)
	}
	return m, nil
}

const datasetColumns = `id, author, sha, last_modified, private, downloads, likes,
	description, citation, tags, siblings, card_data`

func (s *store) SearchDatasets(ctx context.Context, q mirror.Query) ([]*hub.DatasetInfo, error) {
	where, args, argPos := searchConditions(q)

	query := fmt.Sprintf(`
		SELECT %s FROM mirror_dataset
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, datasetColumns, where, orderClause(q), argPos, argPos+1)
	args = append(args, q.Limit, q.Offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search datasets: %w", err)
	}
	defer rows.Close()

	var datasets []*hub.DatasetInfo
	for rows.Next() {
		d, err := scanDataset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dataset row: %w", err)
		}
		datasets = append(datasets, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dataset rows: %w", err)
	}
	return datasets, nil
}

func (s *store) GetDataset(ctx context.Context, id string) (*hub.DatasetInfo, error) {
	query := fmt.Sprintf(`SELECT %s FROM mirror_dataset WHERE id = $1`, datasetColumns)
	d, err := scanDataset(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, mirror.ErrDatasetNotFound
		}
		return nil, fmt.Errorf("get dataset: %w", err)
	}
	return d, nil
}

func (s *store) TagsByType(ctx context.Context, repoType string) ([]mirror.Tag, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT facet, id, label FROM mirror_tag WHERE repo_type = $1 ORDER BY facet, id`,
		repoType,
	)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()

	var tags []mirror.Tag
	for rows.Next() {
		var t mirror.Tag
		if err := rows.Scan(&t.Facet, &t.ID, &t.Label); err != nil {
			return nil, fmt.Errorf("scan tag row: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tag rows: %w", err)
	}
	return tags, nil
}

func (s *store) SaveState(ctx context.Context, state mirror.SyncState) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO mirror_state (id, last_sync, models, datasets, tags)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			last_sync = EXCLUDED.last_sync, models = EXCLUDED.models,
			datasets = EXCLUDED.datasets, tags = EXCLUDED.tags
	`, state.LastSync, state.Models, state.Datasets, state.Tags)
	if err != nil {
		return fmt.Errorf("save sync state: %w", err)
	}
	return nil
}

func (s *store) LoadState(ctx context.Context) (*mirror.SyncState, error) {
	var state mirror.SyncState
	err := s.pool.QueryRow(ctx,
		`SELECT last_sync, models, datasets, tags FROM mirror_state WHERE id = 1`,
	).Scan(&state.LastSync, &state.Models, &state.Datasets, &state.Tags)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load sync state: %w", err)
	}
	return &state, nil
}

// searchConditions builds the WHERE clause for the hub query grammar:
// author matches exactly, search matches the id as a substring, and every
// filter value must be present in the record's tag array.
func searchConditions(q mirror.Query) (where string, args []interface{}, argPos int) {
	var conditions []string
	argPos = 1

	if q.Author != "" {
		conditions = append(conditions, fmt.Sprintf("author = $%d", argPos))
		args = append(args, q.Author)
		argPos++
	}
	if q.Search != "" {
		conditions = append(conditions, fmt.Sprintf("id ILIKE $%d", argPos))
		args = append(args, "%"+q.Search+"%")
		argPos++
	}
	for _, f := range q.Filters {
		conditions = append(conditions, fmt.Sprintf("tags @> $%d", argPos))
		args = append(args, []string{f})
		argPos++
	}

	if len(conditions) == 0 {
		return "", args, argPos
	}
	return "WHERE " + strings.Join(conditions, " AND "), args, argPos
}

var sortColumns = map[string]string{
	"downloads":    "downloads",
	"likes":        "likes",
	"lastModified": "last_modified",
	"id":           "id",
}

// orderClause maps the requested sort onto a whitelisted column. Unknown
// sort keys fall back to the default ordering.
func orderClause(q mirror.Query) string {
	col, ok := sortColumns[q.Sort]
	if !ok {
		return "downloads DESC, id ASC"
	}
	dir := "ASC"
	if q.Descending {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, id ASC", col, dir)
}

func scanModel(row pgx.Row) (*hub.ModelInfo, error) {
	m := &hub.ModelInfo{}
	var siblingsJSON, configJSON, cardDataJSON []byte

	err := row.Scan(
		&m.ID, &m.Author, &m.SHA, &m.LastModified, &m.Private,
		&m.Downloads, &m.Likes, &m.LibraryName, &m.PipelineTag,
		&m.Tags, &siblingsJSON, &configJSON, &cardDataJSON,
	)
	if err != nil {
		return nil, err
	}

	if len(siblingsJSON) > 0 {
		if err := json.Unmarshal(siblingsJSON, &m.Siblings); err != nil {
			return nil, fmt.Errorf("unmarshal siblings: %w", err)
		}
	}
	m.Config = rawFrom(configJSON)
	m.CardData = rawFrom(cardDataJSON)
	return m, nil
}

func scanDataset(row pgx.Row) (*hub.DatasetInfo, error) {
	d := &hub.DatasetInfo{}
	var siblingsJSON, cardDataJSON []byte

	err := row.Scan(
		&d.ID, &d.Author, &d.SHA, &d.LastModified, &d.Private,
		&d.Downloads, &d.Likes, &d.Description, &d.Citation,
		&d.Tags, &siblingsJSON, &cardDataJSON,
	)
	if err != nil {
		return nil, err
	}

	if len(siblingsJSON) > 0 {
		if err := json.Unmarshal(siblingsJSON, &d.Siblings); err != nil {
			return nil, fmt.Errorf("unmarshal siblings: %w", err)
		}
	}
	d.CardData = rawFrom(cardDataJSON)
	return d, nil
}

// authorOf falls back to the owner segment of the repo id when the record
// carries no explicit author. Canonical repos have neither.
func authorOf(id, author string) string {
	if author != "" {
		return author
	}
	if owner, _, found := strings.Cut(id, "/"); found {
		return owner
	}
	return ""
}

func marshalOrNil(siblings []hub.SiblingFile) ([]byte, error) {
	if siblings == nil {
		return nil, nil
	}
	return json.Marshal(siblings)
}

func rawOrNil(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

func rawFrom(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}
