// Package planner drives block placement against the scheduling policy. It
// owns the committed snapshot of the block set, applies speculative moves on
// top of it, and resolves each attempt as snapshot -> speculative ->
// commit | revert. At most one move per block is in flight at a time; a
// newer request supersedes the older one.
package planner

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lockinhq/liquid/pkg/model"
	"github.com/lockinhq/liquid/pkg/schedule"
)

// Store is the external persistence collaborator. Create must be idempotent
// under retry for a given correlation id.
type Store interface {
	Blocks() ([]model.CalendarBlock, error)
	Create(b model.CalendarBlock) (string, error)
	UpdateTimes(id string, start, end time.Time) error
	Delete(id string) error
}

var (
	// ErrDeclined means the user answered no to a confirmation. It is a
	// normal abort, not a system failure.
	ErrDeclined     = errors.New("declined")
	ErrUnknownBlock = errors.New("unknown block")
	ErrNoPending    = errors.New("no pending move for block")
)

type Planner struct {
	cfg     schedule.Config
	store   Store
	confirm schedule.Confirmer

	mu      sync.Mutex
	blocks  []model.CalendarBlock // committed snapshot plus speculative overlay
	pending map[string]pendingTxn
}

// pendingTxn holds the compensation needed to revert a speculative move.
type pendingTxn struct {
	move  model.PendingMove
	prior model.CalendarBlock
}

func New(cfg schedule.Config, store Store, confirm schedule.Confirmer) (*Planner, error) {
	if confirm == nil {
		confirm = schedule.DenyAll{}
	}
	p := &Planner{
		cfg:     cfg,
		store:   store,
		confirm: confirm,
		pending: make(map[string]pendingTxn),
	}
	if err := p.Refresh(); err != nil {
		return nil, err
	}
	return p, nil
}

// Refresh refetches the canonical block set, dropping any speculative state.
func (p *Planner) Refresh() error {
	blocks, err := p.store.Blocks()
	if err != nil {
		return fmt.Errorf("could not load blocks: %w", err)
	}
	p.mu.Lock()
	p.blocks = blocks
	p.pending = make(map[string]pendingTxn)
	p.mu.Unlock()
	return nil
}

// Blocks returns a copy of the current view, speculative moves included.
func (p *Planner) Blocks() []model.CalendarBlock {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.CalendarBlock, len(p.blocks))
	copy(out, p.blocks)
	return out
}

// Capacity recomputes capacity stats from the current view.
func (p *Planner) Capacity() model.CapacityStats {
	return schedule.ComputeCapacity(p.cfg, p.Blocks())
}

// Create places a new block. Conflicts and overtime are confirmed through
// the Confirmer, overlap first; a decline aborts with ErrDeclined and no
// mutation. The block carries a fresh correlation id so a retried create is
// not accepted twice.
func (p *Planner) Create(title string, kind model.BlockKind, start, end time.Time) (*model.CalendarBlock, error) {
	ev, err := schedule.Evaluate(p.cfg, start, end, p.Blocks(), "")
	if err != nil {
		return nil, err
	}
	if ev.Conflict != nil && !p.confirm.Confirm(schedule.OverlapPrompt(start, end, *ev.Conflict)) {
		return nil, fmt.Errorf("create %q: %w", title, ErrDeclined)
	}
	if ev.Overtime && !p.confirm.Confirm(schedule.OvertimePrompt(p.cfg, start, end)) {
		return nil, fmt.Errorf("create %q: %w", title, ErrDeclined)
	}

	b := model.CalendarBlock{
		CorrelationID: uuid.NewString(),
		Title:         title,
		Start:         start,
		End:           end,
		Kind:          kind,
		Source:        "local",
	}
	id, err := p.store.Create(b)
	if err != nil {
		return nil, err
	}
	b.ID = id
	if err := p.Refresh(); err != nil {
		log.Printf("Warning: refresh after create failed: %v", err)
	}
	return &b, nil
}

// RequestMove attempts to move a block to [start, end). A clean or
// conflict-confirmed move inside work hours commits immediately and returns
// (nil, nil). An overtime move is applied speculatively and returned as a
// PendingMove awaiting ConfirmMove or CancelMove. Hard cutoff and invalid
// intervals fail with no state change.
func (p *Planner) RequestMove(blockID string, start, end time.Time) (*model.PendingMove, error) {
	p.mu.Lock()
	prior, ok := p.lookupLocked(blockID)
	if ok {
		// A newer request supersedes an unresolved one: drop its overlay
		// and keep the original committed snapshot as the revert target.
		if old, exists := p.pending[blockID]; exists {
			log.Printf("Superseding pending move for %q", old.move.BlockTitle)
			p.restoreLocked(old.prior)
			delete(p.pending, blockID)
			prior = old.prior
		}
	}
	p.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBlock, blockID)
	}

	ev, err := schedule.Evaluate(p.cfg, start, end, p.Blocks(), blockID)
	if err != nil {
		return nil, err
	}
	if ev.Conflict != nil && !p.confirm.Confirm(schedule.OverlapPrompt(start, end, *ev.Conflict)) {
		return nil, fmt.Errorf("move %q: %w", prior.Title, ErrDeclined)
	}

	if ev.Overtime {
		// Hold the move speculatively until an explicit confirm.
		p.mu.Lock()
		p.applyLocked(blockID, start, end)
		pm := model.PendingMove{
			BlockID:    blockID,
			BlockTitle: prior.Title,
			NewStart:   start,
			NewEnd:     end,
		}
		p.pending[blockID] = pendingTxn{move: pm, prior: prior}
		p.mu.Unlock()
		return &pm, nil
	}

	return nil, p.commitMove(blockID, prior, start, end)
}

// ConfirmMove commits a pending overtime move.
func (p *Planner) ConfirmMove(blockID string) error {
	p.mu.Lock()
	txn, ok := p.pending[blockID]
	if !ok {
		p.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNoPending, blockID)
	}
	delete(p.pending, blockID)
	p.mu.Unlock()

	return p.commitMove(blockID, txn.prior, txn.move.NewStart, txn.move.NewEnd)
}

// CancelMove reverts a pending move to the exact prior committed state.
func (p *Planner) CancelMove(blockID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	txn, ok := p.pending[blockID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoPending, blockID)
	}
	delete(p.pending, blockID)
	p.restoreLocked(txn.prior)
	return nil
}

// Pending returns the in-flight move for a block, if any.
func (p *Planner) Pending(blockID string) *model.PendingMove {
	p.mu.Lock()
	defer p.mu.Unlock()
	if txn, ok := p.pending[blockID]; ok {
		pm := txn.move
		return &pm
	}
	return nil
}

// Delete removes a block and refetches the canonical set.
func (p *Planner) Delete(blockID string) error {
	if _, ok := p.lookup(blockID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBlock, blockID)
	}
	if err := p.store.Delete(blockID); err != nil {
		return err
	}
	return p.Refresh()
}

// commitMove persists new times, rolling the view back to the prior
// committed state if persistence fails. Either way the canonical set is
// refetched once the mutation settles.
func (p *Planner) commitMove(blockID string, prior model.CalendarBlock, start, end time.Time) error {
	p.mu.Lock()
	p.applyLocked(blockID, start, end)
	p.mu.Unlock()

	if err := p.store.UpdateTimes(blockID, start, end); err != nil {
		p.mu.Lock()
		p.restoreLocked(prior)
		p.mu.Unlock()
		return fmt.Errorf("could not persist move: %w", err)
	}
	if err := p.Refresh(); err != nil {
		log.Printf("Warning: refresh after move failed: %v", err)
	}
	return nil
}

func (p *Planner) lookup(blockID string) (model.CalendarBlock, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lookupLocked(blockID)
}

func (p *Planner) lookupLocked(blockID string) (model.CalendarBlock, bool) {
	for _, b := range p.blocks {
		if b.ID == blockID {
			return b, true
		}
	}
	return model.CalendarBlock{}, false
}

func (p *Planner) applyLocked(blockID string, start, end time.Time) {
	for i := range p.blocks {
		if p.blocks[i].ID == blockID {
			p.blocks[i].Start = start
			p.blocks[i].End = end
			return
		}
	}
}

func (p *Planner) restoreLocked(prior model.CalendarBlock) {
	for i := range p.blocks {
		if p.blocks[i].ID == prior.ID {
			p.blocks[i] = prior
			return
		}
	}
}
