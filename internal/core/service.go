package core

import (
	"context"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"pantrycore/internal/catalog"
)

// Repository loads and persists the documents behind the controller. The
// docstore package provides the production implementation.
type Repository interface {
	Load(ctx context.Context) (State, error)
	SaveInventory(ctx context.Context, parts PartitionSet, actor string) error
	SaveCustomItems(ctx context.Context, items CustomItems, actor string) error
	SaveCategories(ctx context.Context, cats CategorySet, actor string) error
}

type serviceOptions struct {
	clock   func() time.Time
	logger  *log.Logger
	metrics MetricsRecorder
	tracer  Tracer
}

func defaultServiceOptions() serviceOptions {
	return serviceOptions{
		clock:   func() time.Time { return time.Now().UTC() },
		logger:  log.New(io.Discard, "", 0),
		metrics: NoopMetricsRecorder{},
	}
}

// ServiceOption customizes controller construction.
type ServiceOption func(*serviceOptions)

// WithClock overrides the clock used for operation timing.
func WithClock(clock func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger overrides the operation failure logger.
func WithLogger(logger *log.Logger) ServiceOption {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetricsRecorder wires a metrics sink for operation outcomes.
func WithMetricsRecorder(rec MetricsRecorder) ServiceOption {
	return func(o *serviceOptions) {
		if rec != nil {
			o.metrics = rec
		}
	}
}

// WithTracer wires a tracer that spans every controller operation.
func WithTracer(tracer Tracer) ServiceOption {
	return func(o *serviceOptions) { o.tracer = tracer }
}

// Service is the state controller. It owns the unified in-memory view for a
// session and persists through the repository after every mutation. Mutations
// are applied to a copy first; the in-memory state only advances when the
// save succeeds.
type Service struct {
	repo Repository
	opts serviceOptions

	mu    sync.Mutex
	state State
}

// NewService constructs a controller over the supplied repository.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	options := defaultServiceOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Service{repo: repo, opts: options}
}

func (s *Service) observe(ctx context.Context, operation string, fn func(context.Context) error) error {
	var span TraceSpan
	if s.opts.tracer != nil {
		ctx, span = s.opts.tracer.Start(ctx, operation)
	}
	start := s.opts.clock()
	err := fn(ctx)
	s.opts.metrics.Observe(ctx, operation, err == nil, s.opts.clock().Sub(start))
	if span != nil {
		span.End(err)
	}
	if err != nil {
		s.opts.logger.Printf("%s: %v", operation, err)
	}
	return err
}

// Load reads all documents through the repository and replaces the in-memory
// state. Safe to call again to re-sync with what is on disk.
func (s *Service) Load(ctx context.Context) error {
	return s.observe(ctx, "load_state", func(ctx context.Context) error {
		state, err := s.repo.Load(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.state = state
		s.mu.Unlock()
		return nil
	})
}

// Snapshot returns a deep copy of the current state.
func (s *Service) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Inventory:  s.state.Inventory.Clone(),
		Items:      s.state.Items.Clone(),
		Categories: s.state.Categories.Clone(),
	}
}

// mutateInventory applies fn to a copy of the unified view and persists the
// repartitioned result. The in-memory view advances only on success.
func (s *Service) mutateInventory(ctx context.Context, actor string, fn func(Unified) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Inventory.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.repo.SaveInventory(ctx, Partition(next, s.state.Items), actor); err != nil {
		return err
	}
	s.state.Inventory = next
	return nil
}

// requireItem ensures id is claimed by some item definition.
func (s *Service) requireItem(id string) error {
	if _, ok := Classify(id, s.state.Items); !ok {
		return NotFoundError{Entity: "item", ID: id}
	}
	return nil
}

// UpdateCount sets the count for an item. Negative values clamp to zero. A
// record is created on first touch.
func (s *Service) UpdateCount(ctx context.Context, id string, count float64, actor string) error {
	return s.observe(ctx, "update_count", func(ctx context.Context) error {
		return s.mutateInventory(ctx, actor, func(inv Unified) error {
			if err := s.requireItem(id); err != nil {
				return err
			}
			rec := inv[id]
			rec.Count = clamp(count)
			inv[id] = rec
			return nil
		})
	})
}

// TogglePrep flips the prep flag for an item. Toggling off zeroes the prep
// amount so stale quantities never linger on the list.
func (s *Service) TogglePrep(ctx context.Context, id string, actor string) (bool, error) {
	var flagged bool
	err := s.observe(ctx, "toggle_prep", func(ctx context.Context) error {
		return s.mutateInventory(ctx, actor, func(inv Unified) error {
			if err := s.requireItem(id); err != nil {
				return err
			}
			rec := inv[id]
			rec.NeedsPrep = !rec.NeedsPrep
			if !rec.NeedsPrep {
				rec.PrepAmount = 0
			}
			inv[id] = rec
			flagged = rec.NeedsPrep
			return nil
		})
	})
	return flagged, err
}

// UpdatePrepAmount sets the prep quantity for an item. Negative values clamp
// to zero.
func (s *Service) UpdatePrepAmount(ctx context.Context, id string, amount float64, actor string) error {
	return s.observe(ctx, "update_prep_amount", func(ctx context.Context) error {
		return s.mutateInventory(ctx, actor, func(inv Unified) error {
			if err := s.requireItem(id); err != nil {
				return err
			}
			rec := inv[id]
			rec.PrepAmount = clamp(amount)
			inv[id] = rec
			return nil
		})
	})
}

// ToggleReorder flips the reorder flag for an item. Toggling off zeroes the
// reorder amount.
func (s *Service) ToggleReorder(ctx context.Context, id string, actor string) (bool, error) {
	var flagged bool
	err := s.observe(ctx, "toggle_reorder", func(ctx context.Context) error {
		return s.mutateInventory(ctx, actor, func(inv Unified) error {
			if err := s.requireItem(id); err != nil {
				return err
			}
			rec := inv[id]
			rec.NeedsReorder = !rec.NeedsReorder
			if !rec.NeedsReorder {
				rec.ReorderAmount = 0
			}
			inv[id] = rec
			flagged = rec.NeedsReorder
			return nil
		})
	})
	return flagged, err
}

// UpdateReorderAmount sets the reorder quantity for an item. Negative values
// clamp to zero.
func (s *Service) UpdateReorderAmount(ctx context.Context, id string, amount float64, actor string) error {
	return s.observe(ctx, "update_reorder_amount", func(ctx context.Context) error {
		return s.mutateInventory(ctx, actor, func(inv Unified) error {
			if err := s.requireItem(id); err != nil {
				return err
			}
			rec := inv[id]
			rec.ReorderAmount = clamp(amount)
			inv[id] = rec
			return nil
		})
	})
}

// ClearCounts zeroes the counts of every built-in item of the domain. Custom
// item counts are left alone so user-entered stock survives a reset.
func (s *Service) ClearCounts(ctx context.Context, domain catalog.Domain, actor string) error {
	return s.observe(ctx, "clear_counts", func(ctx context.Context) error {
		return s.mutateInventory(ctx, actor, func(inv Unified) error {
			for id, rec := range inv {
				if !catalog.Contains(domain, id) {
					continue
				}
				rec.Count = 0
				inv[id] = rec
			}
			return nil
		})
	})
}

// ClearPrepList drops the prep flag and amount from every record.
func (s *Service) ClearPrepList(ctx context.Context, actor string) error {
	return s.observe(ctx, "clear_prep_list", func(ctx context.Context) error {
		return s.mutateInventory(ctx, actor, func(inv Unified) error {
			for id, rec := range inv {
				rec.NeedsPrep = false
				rec.PrepAmount = 0
				inv[id] = rec
			}
			return nil
		})
	})
}

// ClearReorderList drops the reorder flag and amount from every record.
func (s *Service) ClearReorderList(ctx context.Context, actor string) error {
	return s.observe(ctx, "clear_reorder_list", func(ctx context.Context) error {
		return s.mutateInventory(ctx, actor, func(inv Unified) error {
			for id, rec := range inv {
				rec.NeedsReorder = false
				rec.ReorderAmount = 0
				inv[id] = rec
			}
			return nil
		})
	})
}

// AddCustomItem validates and stores a new custom item. When id is empty one
// is generated from the item name. Returns the id the item was stored under.
func (s *Service) AddCustomItem(ctx context.Context, domain catalog.Domain, id string, item catalog.Item, actor string) (string, error) {
	err := s.observe(ctx, "add_item", func(ctx context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if strings.TrimSpace(id) == "" {
			id = GenerateItemKey(item.Name)
		}
		if err := ValidateNewItem(id, domain, item, s.state.Items, s.state.Categories); err != nil {
			return err
		}
		next := withItem(s.state.Items, domain, id, item)
		if err := s.repo.SaveCustomItems(ctx, next, actor); err != nil {
			return err
		}
		s.state.Items = next
		return nil
	})
	return id, err
}

// UpdateCustomItem replaces an existing custom item definition.
func (s *Service) UpdateCustomItem(ctx context.Context, domain catalog.Domain, id string, item catalog.Item, actor string) error {
	return s.observe(ctx, "update_item", func(ctx context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.state.Items.Domain(domain)[id]; !ok {
			return NotFoundError{Entity: "item", ID: id}
		}
		if strings.TrimSpace(item.Name) == "" {
			return invalidf("item name is required")
		}
		if !CategoryExists(domain, item.Category, s.state.Categories) {
			return invalidf("category %q does not exist for domain %s", item.Category, domain)
		}
		next := withItem(s.state.Items, domain, id, item)
		if err := s.repo.SaveCustomItems(ctx, next, actor); err != nil {
			return err
		}
		s.state.Items = next
		return nil
	})
}

// DeleteCustomItem removes a custom item. Built-in catalog items cannot be
// deleted; removing a custom override of a built-in id keeps the record,
// which falls back to the catalog definition. An id left unclaimed loses its
// inventory record too.
func (s *Service) DeleteCustomItem(ctx context.Context, domain catalog.Domain, id string, actor string) error {
	return s.observe(ctx, "delete_item", func(ctx context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.state.Items.Domain(domain)[id]; !ok {
			if catalog.Contains(domain, id) {
				return invalidf("built-in item %q cannot be deleted", id)
			}
			return NotFoundError{Entity: "item", ID: id}
		}
		nextItems := withoutItem(s.state.Items, domain, id)
		nextInv := s.state.Inventory.Clone()
		if _, stillKnown := Classify(id, nextItems); !stillKnown {
			delete(nextInv, id)
		}
		if err := s.repo.SaveCustomItems(ctx, nextItems, actor); err != nil {
			return err
		}
		if err := s.repo.SaveInventory(ctx, Partition(nextInv, nextItems), actor); err != nil {
			return err
		}
		s.state.Items = nextItems
		s.state.Inventory = nextInv
		return nil
	})
}

// AddCategory appends a new custom category to a domain.
func (s *Service) AddCategory(ctx context.Context, domain catalog.Domain, name string, actor string) error {
	return s.observe(ctx, "add_category", func(ctx context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := ValidateCategoryName(domain, name, "", s.state.Categories); err != nil {
			return err
		}
		next := s.state.Categories.Clone()
		next.setDomain(domain, append(next.Domain(domain), strings.TrimSpace(name)))
		if err := s.repo.SaveCategories(ctx, next, actor); err != nil {
			return err
		}
		s.state.Categories = next
		return nil
	})
}

// RenameCategory renames a custom category and re-points the custom items
// that carried it.
func (s *Service) RenameCategory(ctx context.Context, domain catalog.Domain, oldName, newName string, actor string) error {
	return s.observe(ctx, "rename_category", func(ctx context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		nextCats, nextItems, err := RenameCategory(domain, oldName, newName, s.state.Categories, s.state.Items)
		if err != nil {
			return err
		}
		if err := s.repo.SaveCategories(ctx, nextCats, actor); err != nil {
			return err
		}
		if err := s.repo.SaveCustomItems(ctx, nextItems, actor); err != nil {
			return err
		}
		s.state.Categories = nextCats
		s.state.Items = nextItems
		return nil
	})
}

// DeleteCategory removes a custom category, cascading to the custom items
// carrying it and their inventory records.
func (s *Service) DeleteCategory(ctx context.Context, domain catalog.Domain, name string, actor string) error {
	return s.observe(ctx, "delete_category", func(ctx context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		nextCats, nextItems, deleted, err := DeleteCategory(domain, name, s.state.Categories, s.state.Items)
		if err != nil {
			return err
		}
		nextInv := s.state.Inventory.Clone()
		for _, id := range deleted {
			if _, stillKnown := Classify(id, nextItems); !stillKnown {
				delete(nextInv, id)
			}
		}
		if err := s.repo.SaveCategories(ctx, nextCats, actor); err != nil {
			return err
		}
		if err := s.repo.SaveCustomItems(ctx, nextItems, actor); err != nil {
			return err
		}
		if err := s.repo.SaveInventory(ctx, Partition(nextInv, nextItems), actor); err != nil {
			return err
		}
		s.state.Categories = nextCats
		s.state.Items = nextItems
		s.state.Inventory = nextInv
		return nil
	})
}

// ListEntry is one row of a prep or reorder list snapshot.
type ListEntry struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit,omitempty"`
	Amount       float64 `json:"amount"`
	CurrentCount float64 `json:"currentCount"`
}

// PrepList returns the flagged prepared-ingredient entries, sorted by
// category then name.
func (s *Service) PrepList() []ListEntry {
	return s.listEntries(catalog.DomainPrepared, func(rec Record) (bool, float64) {
		return rec.NeedsPrep, rec.PrepAmount
	})
}

// ReorderList returns the flagged raw-ingredient entries, sorted by category
// then name.
func (s *Service) ReorderList() []ListEntry {
	return s.listEntries(catalog.DomainRaw, func(rec Record) (bool, float64) {
		return rec.NeedsReorder, rec.ReorderAmount
	})
}

func (s *Service) listEntries(domain catalog.Domain, pick func(Record) (bool, float64)) []ListEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []ListEntry{}
	for id, rec := range s.state.Inventory {
		flagged, amount := pick(rec)
		if !flagged {
			continue
		}
		item, itemDomain, ok := ResolveItem(id, s.state.Items)
		if !ok || itemDomain != domain {
			continue
		}
		out = append(out, ListEntry{
			ID:           id,
			Name:         item.Name,
			Category:     item.Category,
			Unit:         item.Unit,
			Amount:       amount,
			CurrentCount: rec.Count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
