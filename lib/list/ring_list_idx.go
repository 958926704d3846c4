package list

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/benz9527/xring/lib/infra"
	"github.com/benz9527/xring/lib/xlog"
)

var (
	ErrRingListIndexOutOfRange = errors.New("index out of range")
	ErrRingListEmpty           = errors.New("empty ring list")
)

// normalizeIndex resolves a possibly negative index into [0, length).
// Indices below -length are rejected like indices at or above length.
func normalizeIndex(index, length int64) (int64, error) {
	if length <= 0 {
		return -1, infra.WrapErrorStackWithMessage(ErrRingListEmpty,
			fmt.Sprintf("[xring] index %d, len 0", index))
	}
	if index >= length || index < -length {
		return -1, infra.WrapErrorStackWithMessage(ErrRingListIndexOutOfRange,
			fmt.Sprintf("[xring] index %d, len %d", index, length))
	}
	return ((index % length) + length) % length, nil
}

// checkInsertIndex only accepts 0 <= index < length.
func checkInsertIndex(index, length int64) error {
	if length <= 0 {
		return infra.WrapErrorStackWithMessage(ErrRingListEmpty,
			fmt.Sprintf("[xring] insert index %d, len 0", index))
	}
	if index < 0 || index >= length {
		return infra.WrapErrorStackWithMessage(ErrRingListIndexOutOfRange,
			fmt.Sprintf("[xring] insert index %d, len %d", index, length))
	}
	return nil
}

// ringListCore holds the node type agnostic state of both ring lists.
type ringListCore struct {
	name   string
	logger xlog.XLogger
	stats  *ringListStats
	head   nodeRef
	tail   nodeRef
	cursor nodeRef
	len    int64
}

func newRingListCore(opt *ringListOption) ringListCore {
	core := ringListCore{
		name:   opt.getName(),
		logger: opt.getLogger(),
		head:   nilRef,
		tail:   nilRef,
		cursor: nilRef,
	}
	if opt.enableStats {
		core.stats = newRingListStats(core.name)
	}
	return core
}

func (c *ringListCore) Len() int64 {
	return c.len
}

func (c *ringListCore) reset() {
	c.head, c.tail, c.cursor = nilRef, nilRef, nilRef
}

// resolve validates index for a lookup style operation.
func (c *ringListCore) resolve(op string, index int64) (int64, error) {
	eff, err := normalizeIndex(index, c.len)
	if err != nil {
		return -1, c.rejected(op, index, err)
	}
	return eff, nil
}

func (c *ringListCore) resolveInsert(index int64) error {
	if err := checkInsertIndex(index, c.len); err != nil {
		return c.rejected("addAt", index, err)
	}
	return nil
}

func (c *ringListCore) checkCursor(op string) error {
	if c.len <= 0 || c.cursor == nilRef {
		return c.rejected(op, -1, infra.WrapErrorStackWithMessage(ErrRingListEmpty,
			fmt.Sprintf("[xring] %s on empty list", op)))
	}
	return nil
}

func (c *ringListCore) rejected(op string, index int64, err error) error {
	c.stats.IncreaseRejectedCount(err)
	c.logger.Debug("[xring] operation rejected",
		zap.String("list", c.name),
		zap.String("op", op),
		zap.Int64("index", index),
		zap.Int64("len", c.len),
		zap.Error(err),
	)
	return err
}

func (c *ringListCore) inserted() {
	c.len++
	c.stats.IncreaseInsertCount()
}

func (c *ringListCore) removed() {
	c.len--
	c.stats.IncreaseRemoveCount()
	if c.len == 0 {
		c.reset()
	}
}

func (c *ringListCore) verified(err error) error {
	if err != nil {
		c.logger.ErrorStack(err, "[xring] ring verification failed",
			zap.String("list", c.name),
			zap.Int64("len", c.len),
		)
	}
	return err
}
