package leaselock

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrBusy is returned when the lock is held by another writer and
// Options.Wait is off.
var ErrBusy = errors.New("lease lock busy")

type dbConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Client hands out short-lived leases backed by the workflow_locks table.
// Workflow saves replace documents wholesale, so concurrent writers to
// the same public id are serialized through a lease per workflow.
type Client struct {
	db dbConn
}

type Options struct {
	// TTL bounds how long a crashed holder can block other writers.
	TTL time.Duration

	Wait         bool
	WaitInterval time.Duration
}

// Lease is one acquired lock. Release it when the write finishes; expired
// leases are stolen by the next acquirer.
type Lease struct {
	Key   string
	Token string

	client *Client
}

func New(pool *pgxpool.Pool) *Client {
	return &Client{db: pool}
}

// WorkflowKey builds the lock key for a workflow public id.
func WorkflowKey(publicID string) string {
	return "workflow:" + publicID
}

// WithLease runs fn while holding the lease for key, releasing it on
// return.
func (c *Client) WithLease(ctx context.Context, key string, opts Options, fn func(ctx context.Context) error) error {
	lease, err := c.Acquire(ctx, key, opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = lease.Release(context.Background())
	}()
	return fn(ctx)
}

func (c *Client) Acquire(ctx context.Context, key string, opts Options) (*Lease, error) {
	if key == "" {
		return nil, errors.New("lease lock key is empty")
	}

	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Second
	}
	if opts.WaitInterval <= 0 {
		opts.WaitInterval = 250 * time.Millisecond
	}
	ttlMs := opts.TTL.Milliseconds()

	token, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	acquireOnce := func(ctx context.Context) (bool, error) {
		var returnedKey string
		err := c.db.QueryRow(ctx, tryAcquireSQL, key, token, ttlMs).Scan(&returnedKey)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return false, nil
			}
			return false, err
		}
		return returnedKey != "", nil
	}

	for {
		ok, err := acquireOnce(ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			return &Lease{Key: key, Token: token, client: c}, nil
		}
		if !opts.Wait {
			return nil, ErrBusy
		}

		t := time.NewTimer(opts.WaitInterval)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}

func (l *Lease) Release(ctx context.Context) error {
	_, err := l.client.db.Exec(ctx, releaseSQL, l.Key, l.Token)
	return err
}

const tryAcquireSQL = `
INSERT INTO workflow_locks (lock_key, locked_by, expires_at)
VALUES ($1, $2, now() + ($3::bigint * interval '1 millisecond'))
ON CONFLICT (lock_key) DO UPDATE
SET locked_by  = EXCLUDED.locked_by,
    expires_at = EXCLUDED.expires_at
WHERE workflow_locks.expires_at < now()
   OR workflow_locks.locked_by = EXCLUDED.locked_by
RETURNING lock_key;
`

const releaseSQL = `
DELETE FROM workflow_locks
WHERE lock_key = $1 AND locked_by = $2;
`
