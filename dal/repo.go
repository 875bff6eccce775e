package dal

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"
	"ripple/shared"
	"strconv"
	"strings"
	"time"
)

const schemaVer = 1

//go:embed scripts/*
var scripts embed.FS

var (
	// ErrDuplicateKey wraps unique and primary key violations from either driver.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrMissingRef wraps foreign key violations from either driver.
	ErrMissingRef = errors.New("referenced row does not exist")
)

type IRepo interface {
	InitUpdateDb()
	Close() error
	UpsertAccount(ctx context.Context, acct *Account) error
	SetHandle(ctx context.Context, accountId, handle string) (found bool, err error)
	GetAccount(ctx context.Context, id string) (*Account, error)
	GetAccountByHandle(ctx context.Context, handle string) (*Account, error)
	GetAccountsByIds(ctx context.Context, ids []string) (map[string]*Account, error)
	SearchAccounts(ctx context.Context, fragment, excludeId string, limit int) ([]*Account, error)
	AddFollow(ctx context.Context, followerId, followeeId string, when time.Time) (isNew bool, err error)
	RemoveFollow(ctx context.Context, followerId, followeeId string) (removed bool, err error)
	GetFolloweeIds(ctx context.Context, followerId string) ([]string, error)
	GetFollowedAmong(ctx context.Context, followerId string, ids []string) (map[string]bool, error)
	GetFollowCounts(ctx context.Context, accountId string) (followers, following int, err error)
	AddDrop(ctx context.Context, drop *Drop) error
	GetDrop(ctx context.Context, id string) (*Drop, error)
	UpdateDropBody(ctx context.Context, id, authorId, body string, when time.Time) (changed bool, err error)
	DeleteDropCascade(ctx context.Context, id, authorId string) (deleted bool, err error)
	GetDropsByAuthors(ctx context.Context, authorIds []string) ([]*Drop, error)
	GetUsedSlots(ctx context.Context, authorId, date string) ([]shared.Slot, error)
	AddHeart(ctx context.Context, dropId, accountId string, when time.Time) (isNew bool, err error)
	RemoveHeart(ctx context.Context, dropId, accountId string) (removed bool, err error)
	GetHeartCounts(ctx context.Context, dropIds []string) (map[string]int, error)
	GetHeartedAmong(ctx context.Context, accountId string, dropIds []string) (map[string]bool, error)
	AddRipple(ctx context.Context, ripple *Ripple) error
	GetRipple(ctx context.Context, id string) (*Ripple, error)
	DeleteRipple(ctx context.Context, id, authorId string) (deleted bool, err error)
	GetRipplesForDrops(ctx context.Context, dropIds []string) ([]*Ripple, error)
}

type Repo struct {
	cfg    *shared.Config
	logger shared.ILogger
	db     *sql.DB
	driver string
}

func NewRepo(cfg *shared.Config, logger shared.ILogger) IRepo {

	var err error
	var db *sql.DB

	switch cfg.DbDriver {
	case shared.DriverPostgres:
		db, err = sql.Open(shared.DriverPostgres, cfg.Secrets.DbDsn)
		if err != nil {
			logger.Errorf("Failed to open Postgres connection: %v", err)
			panic(err)
		}
	default:
		// https://phiresky.github.io/blog/2020/sqlite-performance-tuning/
		// _synchronous=1 is "normal"; _txlock=immediate takes the write lock at BEGIN
		cstr := "file:%s?mode=rwc&_journal_mode=WAL&_synchronous=1&_busy_timeout=5000&_foreign_keys=1&_txlock=immediate"
		db, err = sql.Open(shared.DriverSqlite, fmt.Sprintf(cstr, cfg.DbFile))
		if err != nil {
			logger.Errorf("Failed to open/create DB file: %s: %v", cfg.DbFile, err)
			panic(err)
		}
	}

	repo := Repo{
		cfg:    cfg,
		logger: logger,
		db:     db,
		driver: cfg.DbDriver,
	}

	return &repo
}

func (repo *Repo) Close() error {
	return repo.db.Close()
}

func (repo *Repo) isPostgres() bool {
	return repo.driver == shared.DriverPostgres
}

// q rewrites ? placeholders to $n for Postgres. Queries never contain a literal ?.
func (repo *Repo) q(query string) string {
	if !repo.isPostgres() {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n += 1
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func idArgs(lead []any, ids []string) []any {
	args := make([]any, 0, len(lead)+len(ids))
	args = append(args, lead...)
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}

// classify maps driver-specific constraint failures onto ErrDuplicateKey and ErrMissingRef.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %v", ErrMissingRef, err)
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		case "23503":
			return fmt.Errorf("%w: %v", ErrMissingRef, err)
		}
	}
	return err
}

func (repo *Repo) InitUpdateDb() {

	dbVer := 0
	sysParamsExists := false
	var err error
	var rows *sql.Rows

	existsQuery := "SELECT name FROM sqlite_master WHERE type='table' AND name='sys_params'"
	scriptDir := "sqlite"
	if repo.isPostgres() {
		existsQuery = "SELECT table_name FROM information_schema.tables WHERE table_name='sys_params'"
		scriptDir = "postgres"
	}

	rows, err = repo.db.Query(existsQuery)
	if err != nil {
		repo.logger.Errorf("Failed to check if 'sys_params' table exists: %v", err)
		panic(err)
	}
	for rows.Next() {
		sysParamsExists = true
	}
	_ = rows.Close()
	if !sysParamsExists {
		repo.logger.Printf("Database appears to be empty; current schema version is %d", schemaVer)
	} else {
		row := repo.db.QueryRow("SELECT val FROM sys_params WHERE name='schema_ver'")
		if err = row.Scan(&dbVer); err != nil {
			repo.logger.Errorf("Failed to query schema version: %v", err)
			panic(err)
		}
		repo.logger.Printf("Database is at version %d; current schema version is %d", dbVer, schemaVer)
	}
	for i := dbVer; i < schemaVer; i += 1 {
		nextVer := i + 1
		fn := fmt.Sprintf("scripts/%s/create-%02d.sql", scriptDir, nextVer)
		repo.logger.Printf("Running %s", fn)
		var sqlBytes []byte
		if sqlBytes, err = scripts.ReadFile(fn); err != nil {
			repo.logger.Errorf("Failed to read init script %s: %v", fn, err)
			panic(err)
		}
		if _, err = repo.db.Exec(string(sqlBytes)); err != nil {
			repo.logger.Errorf("Failed to execute init script %s: %v", fn, err)
			panic(err)
		}
		_, err = repo.db.Exec(repo.q("UPDATE sys_params SET val=? WHERE name='schema_ver'"), nextVer)
		if err != nil {
			repo.logger.Errorf("Failed to update schema_ver to %d: %v", nextVer, err)
			panic(err)
		}
	}
}

const accountCols = `id, created_at, handle, display_name, avatar_url`

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*Account, error) {
	var res Account
	var handle sql.NullString
	if err := row.Scan(&res.Id, &res.CreatedAt, &handle, &res.DisplayName, &res.AvatarUrl); err != nil {
		return nil, err
	}
	res.Handle = handle.String
	return &res, nil
}

// UpsertAccount mirrors identity fields. The handle is owned by SetHandle and never touched here.
func (repo *Repo) UpsertAccount(ctx context.Context, acct *Account) error {
	_, err := repo.db.ExecContext(ctx, repo.q(`INSERT INTO accounts (id, created_at, display_name, avatar_url)
		VALUES(?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET display_name=excluded.display_name, avatar_url=excluded.avatar_url`),
		acct.Id, acct.CreatedAt, acct.DisplayName, acct.AvatarUrl)
	return classify(err)
}

func (repo *Repo) SetHandle(ctx context.Context, accountId, handle string) (found bool, err error) {
	res, err := repo.db.ExecContext(ctx, repo.q(`UPDATE accounts SET handle=? WHERE id=?`), handle, accountId)
	if err != nil {
		return false, classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func (repo *Repo) GetAccount(ctx context.Context, id string) (*Account, error) {
	row := repo.db.QueryRowContext(ctx, repo.q(`SELECT `+accountCols+` FROM accounts WHERE id=?`), id)
	res, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		} else {
			return nil, err
		}
	}
	return res, nil
}

func (repo *Repo) GetAccountByHandle(ctx context.Context, handle string) (*Account, error) {
	row := repo.db.QueryRowContext(ctx, repo.q(`SELECT `+accountCols+` FROM accounts WHERE handle=?`), handle)
	res, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		} else {
			return nil, err
		}
	}
	return res, nil
}

func (repo *Repo) GetAccountsByIds(ctx context.Context, ids []string) (map[string]*Account, error) {
	res := make(map[string]*Account, len(ids))
	if len(ids) == 0 {
		return res, nil
	}
	query := `SELECT ` + accountCols + ` FROM accounts WHERE id IN (` + placeholders(len(ids)) + `)`
	rows, err := repo.db.QueryContext(ctx, repo.q(query), idArgs(nil, ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		res[acct.Id] = acct
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

// SearchAccounts matches a substring of the handle. Accounts without a handle never match.
func (repo *Repo) SearchAccounts(ctx context.Context, fragment, excludeId string, limit int) ([]*Account, error) {
	query := `SELECT ` + accountCols + ` FROM accounts
		WHERE handle IS NOT NULL AND handle LIKE ? ESCAPE '\' AND id<>?
		ORDER BY handle LIMIT ?`
	rows, err := repo.db.QueryContext(ctx, repo.q(query), "%"+escapeLike(fragment)+"%", excludeId, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]*Account, 0)
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, acct)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (repo *Repo) AddFollow(ctx context.Context, followerId, followeeId string, when time.Time) (isNew bool, err error) {
	_, err = repo.db.ExecContext(ctx, repo.q(`INSERT INTO follows (follower_id, followee_id, created_at)
		VALUES(?, ?, ?)`), followerId, followeeId, when)
	if err == nil {
		return true, nil
	}
	err = classify(err)
	if errors.Is(err, ErrDuplicateKey) {
		return false, nil
	}
	return false, err
}

func (repo *Repo) RemoveFollow(ctx context.Context, followerId, followeeId string) (removed bool, err error) {
	res, err := repo.db.ExecContext(ctx, repo.q(`DELETE FROM follows WHERE follower_id=? AND followee_id=?`),
		followerId, followeeId)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func (repo *Repo) GetFolloweeIds(ctx context.Context, followerId string) ([]string, error) {
	rows, err := repo.db.QueryContext(ctx, repo.q(`SELECT followee_id FROM follows WHERE follower_id=?`), followerId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return readIds(rows)
}

func readIds(rows *sql.Rows) ([]string, error) {
	var err error
	res := make([]string, 0)
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		res = append(res, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func readIdSet(rows *sql.Rows) (map[string]bool, error) {
	ids, err := readIds(rows)
	if err != nil {
		return nil, err
	}
	res := make(map[string]bool, len(ids))
	for _, id := range ids {
		res[id] = true
	}
	return res, nil
}

// GetFollowedAmong returns the subset of ids that followerId follows.
func (repo *Repo) GetFollowedAmong(ctx context.Context, followerId string, ids []string) (map[string]bool, error) {
	if len(ids) == 0 {
		return map[string]bool{}, nil
	}
	query := `SELECT followee_id FROM follows WHERE follower_id=? AND followee_id IN (` + placeholders(len(ids)) + `)`
	rows, err := repo.db.QueryContext(ctx, repo.q(query), idArgs([]any{followerId}, ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return readIdSet(rows)
}

func (repo *Repo) GetFollowCounts(ctx context.Context, accountId string) (followers, following int, err error) {
	row := repo.db.QueryRowContext(ctx, repo.q(`SELECT
		(SELECT COUNT(*) FROM follows WHERE followee_id=?),
		(SELECT COUNT(*) FROM follows WHERE follower_id=?)`), accountId, accountId)
	if err = row.Scan(&followers, &following); err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}

const dropCols = `id, author_id, body, created_at, updated_at, posted_date, posted_period`

func scanDrop(row scanner) (*Drop, error) {
	var res Drop
	var period string
	err := row.Scan(&res.Id, &res.AuthorId, &res.Body, &res.CreatedAt, &res.UpdatedAt, &res.Slot.Date, &period)
	if err != nil {
		return nil, err
	}
	res.Slot.Period = shared.Period(period)
	return &res, nil
}

// AddDrop relies on the (author, date, period) unique constraint; a taken slot yields ErrDuplicateKey.
func (repo *Repo) AddDrop(ctx context.Context, drop *Drop) error {
	_, err := repo.db.ExecContext(ctx, repo.q(`INSERT INTO drops
		(id, author_id, body, created_at, updated_at, posted_date, posted_period)
		VALUES(?, ?, ?, ?, ?, ?, ?)`),
		drop.Id, drop.AuthorId, drop.Body, drop.CreatedAt, drop.UpdatedAt, drop.Slot.Date, string(drop.Slot.Period))
	return classify(err)
}

func (repo *Repo) GetDrop(ctx context.Context, id string) (*Drop, error) {
	row := repo.db.QueryRowContext(ctx, repo.q(`SELECT `+dropCols+` FROM drops WHERE id=?`), id)
	res, err := scanDrop(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		} else {
			return nil, err
		}
	}
	return res, nil
}

// UpdateDropBody only writes when the caller is the author and the body differs.
func (repo *Repo) UpdateDropBody(ctx context.Context, id, authorId, body string, when time.Time) (changed bool, err error) {
	res, err := repo.db.ExecContext(ctx, repo.q(`UPDATE drops SET body=?, updated_at=?
		WHERE id=? AND author_id=? AND body<>?`), body, when, id, authorId, body)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// DeleteDropCascade removes the drop with its hearts and ripples in one transaction.
// Dependents are only touched when the drop belongs to authorId.
func (repo *Repo) DeleteDropCascade(ctx context.Context, id, authorId string) (deleted bool, err error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if !deleted {
			_ = tx.Rollback()
		}
	}()

	owned := `SELECT id FROM drops WHERE id=? AND author_id=?`
	if _, err = tx.ExecContext(ctx, repo.q(`DELETE FROM hearts WHERE drop_id IN (`+owned+`)`), id, authorId); err != nil {
		return false, err
	}
	if _, err = tx.ExecContext(ctx, repo.q(`DELETE FROM ripples WHERE drop_id IN (`+owned+`)`), id, authorId); err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, repo.q(`DELETE FROM drops WHERE id=? AND author_id=?`), id, authorId)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	if err = tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// GetDropsByAuthors is ordered newest first, id descending on ties.
func (repo *Repo) GetDropsByAuthors(ctx context.Context, authorIds []string) ([]*Drop, error) {
	res := make([]*Drop, 0)
	if len(authorIds) == 0 {
		return res, nil
	}
	query := `SELECT ` + dropCols + ` FROM drops WHERE author_id IN (` + placeholders(len(authorIds)) + `)
		ORDER BY created_at DESC, id DESC`
	rows, err := repo.db.QueryContext(ctx, repo.q(query), idArgs(nil, authorIds)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		drop, err := scanDrop(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, drop)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (repo *Repo) GetUsedSlots(ctx context.Context, authorId, date string) ([]shared.Slot, error) {
	rows, err := repo.db.QueryContext(ctx, repo.q(`SELECT posted_date, posted_period FROM drops
		WHERE author_id=? AND posted_date=? ORDER BY posted_period`), authorId, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]shared.Slot, 0, 2)
	for rows.Next() {
		var slot shared.Slot
		var period string
		if err = rows.Scan(&slot.Date, &period); err != nil {
			return nil, err
		}
		slot.Period = shared.Period(period)
		res = append(res, slot)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// AddHeart treats a duplicate insert as already hearted. A missing drop yields ErrMissingRef.
func (repo *Repo) AddHeart(ctx context.Context, dropId, accountId string, when time.Time) (isNew bool, err error) {
	_, err = repo.db.ExecContext(ctx, repo.q(`INSERT INTO hearts (drop_id, account_id, created_at) VALUES(?, ?, ?)`),
		dropId, accountId, when)
	if err == nil {
		return true, nil
	}
	err = classify(err)
	if errors.Is(err, ErrDuplicateKey) {
		return false, nil
	}
	return false, err
}

func (repo *Repo) RemoveHeart(ctx context.Context, dropId, accountId string) (removed bool, err error) {
	res, err := repo.db.ExecContext(ctx, repo.q(`DELETE FROM hearts WHERE drop_id=? AND account_id=?`),
		dropId, accountId)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// GetHeartCounts omits drops without hearts.
func (repo *Repo) GetHeartCounts(ctx context.Context, dropIds []string) (map[string]int, error) {
	res := make(map[string]int)
	if len(dropIds) == 0 {
		return res, nil
	}
	query := `SELECT drop_id, COUNT(*) FROM hearts WHERE drop_id IN (` + placeholders(len(dropIds)) + `)
		GROUP BY drop_id`
	rows, err := repo.db.QueryContext(ctx, repo.q(query), idArgs(nil, dropIds)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var count int
		if err = rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		res[id] = count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (repo *Repo) GetHeartedAmong(ctx context.Context, accountId string, dropIds []string) (map[string]bool, error) {
	if len(dropIds) == 0 {
		return map[string]bool{}, nil
	}
	query := `SELECT drop_id FROM hearts WHERE account_id=? AND drop_id IN (` + placeholders(len(dropIds)) + `)`
	rows, err := repo.db.QueryContext(ctx, repo.q(query), idArgs([]any{accountId}, dropIds)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return readIdSet(rows)
}

const rippleCols = `id, drop_id, author_id, body, created_at`

func scanRipple(row scanner) (*Ripple, error) {
	var res Ripple
	if err := row.Scan(&res.Id, &res.DropId, &res.AuthorId, &res.Body, &res.CreatedAt); err != nil {
		return nil, err
	}
	return &res, nil
}

func (repo *Repo) AddRipple(ctx context.Context, ripple *Ripple) error {
	_, err := repo.db.ExecContext(ctx, repo.q(`INSERT INTO ripples (id, drop_id, author_id, body, created_at)
		VALUES(?, ?, ?, ?, ?)`),
		ripple.Id, ripple.DropId, ripple.AuthorId, ripple.Body, ripple.CreatedAt)
	return classify(err)
}

func (repo *Repo) GetRipple(ctx context.Context, id string) (*Ripple, error) {
	row := repo.db.QueryRowContext(ctx, repo.q(`SELECT `+rippleCols+` FROM ripples WHERE id=?`), id)
	res, err := scanRipple(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		} else {
			return nil, err
		}
	}
	return res, nil
}

func (repo *Repo) DeleteRipple(ctx context.Context, id, authorId string) (deleted bool, err error) {
	res, err := repo.db.ExecContext(ctx, repo.q(`DELETE FROM ripples WHERE id=? AND author_id=?`), id, authorId)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// GetRipplesForDrops is ordered newest first, id descending on ties.
func (repo *Repo) GetRipplesForDrops(ctx context.Context, dropIds []string) ([]*Ripple, error) {
	res := make([]*Ripple, 0)
	if len(dropIds) == 0 {
		return res, nil
	}
	query := `SELECT ` + rippleCols + ` FROM ripples WHERE drop_id IN (` + placeholders(len(dropIds)) + `)
		ORDER BY created_at DESC, id DESC`
	rows, err := repo.db.QueryContext(ctx, repo.q(query), idArgs(nil, dropIds)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		ripple, err := scanRipple(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, ripple)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
