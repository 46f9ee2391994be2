package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/garnishedge/garnishedge_backend/config"
	"gorm.io/gorm"
)

// AcquireSequenceLock serializes file-id-modifier and batch-number
// allocation per pay date across instances using MySQL advisory locks.
// NOTE: GET_LOCK is session-scoped, not transaction-scoped. Acquire and
// release on a pinned connection (gorm's Connection) and keep the lock
// held until the reservation transaction has committed; releasing inside
// the transaction would expose the window between RELEASE_LOCK and COMMIT
// where another session can read the sequence values without seeing the
// uncommitted reservation.
func AcquireSequenceLock(conn *gorm.DB, payDate time.Time) error {
	lockName := fmt.Sprintf("achseq:%s", payDate.Format("2006-01-02"))
	var ok int
	if err := conn.Raw("SELECT GET_LOCK(?, 30)", lockName).Scan(&ok).Error; err != nil {
		return err
	}
	if ok != 1 {
		return fmt.Errorf("could not acquire sequence lock for pay_date=%s", payDate.Format("2006-01-02"))
	}
	return nil
}

// ReleaseSequenceLock must run on the same connection that acquired the
// lock; any other session's RELEASE_LOCK is a no-op.
func ReleaseSequenceLock(conn *gorm.DB, payDate time.Time) {
	lockName := fmt.Sprintf("achseq:%s", payDate.Format("2006-01-02"))
	var _ok int
	_ = conn.Raw("SELECT RELEASE_LOCK(?)", lockName).Scan(&_ok).Error
}

// obtainRedisSequenceLock is a best-effort fast path that keeps concurrent
// requests for the same pay date from even reaching the DB lock. Reliability
// must not depend on Redis: the MySQL advisory lock is the real guard.
func obtainRedisSequenceLock(ctx context.Context, payDate time.Time) *redislock.Lock {
	locker := config.GetRedisLock()
	if locker == nil {
		return nil
	}
	key := fmt.Sprintf("achseq:%s", payDate.Format("2006-01-02"))
	lock, err := locker.Obtain(ctx, key, 30*time.Second, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(200 * time.Millisecond),
	})
	if err != nil {
		return nil
	}
	return lock
}
