package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sync"
	"time"

	"github.com/officina-stampa/fulfillment-api/models"
)

// csvHeader is the fixed export column set.
var csvHeader = []string{
	"id", "customer", "phone", "address", "product_type", "sub_category",
	"quantity", "color", "dimensions", "price_total", "manual_price",
	"effective_price", "notes", "created_at", "status", "barcode",
}

// BatchResult reports the outcome of a batch operation. Failures are keyed
// by order ID; batch delete is best-effort, so its failures are informative
// only and do not prevent local reconciliation.
type BatchResult struct {
	Processed []uint          `json:"processed"`
	Failed    map[uint]string `json:"failed,omitempty"`
}

func newBatchResult() *BatchResult {
	return &BatchResult{Failed: make(map[uint]string)}
}

// BatchCoordinator applies print, export, CSV and delete operations to the
// current selection, sequencing the Scaricato overlay after successful
// print/export and reconciling the local cache after each operation.
type BatchCoordinator struct {
	store    OrderStore
	statuses *StatusMachine
	renderer LabelRenderer
	printer  Printer
	labels   LabelStorage

	// settle is the pause between consecutive export renders, mirroring the
	// layout-settling delay the capture path needs.
	settle time.Duration
}

// NewBatchCoordinator wires a coordinator over its collaborators.
func NewBatchCoordinator(store OrderStore, statuses *StatusMachine, printer Printer, labels LabelStorage, settle time.Duration) *BatchCoordinator {
	return &BatchCoordinator{
		store:    store,
		statuses: statuses,
		printer:  printer,
		labels:   labels,
		settle:   settle,
	}
}

// PrintSelection renders and prints each selected order's label
// sequentially. Every successful print drives the order's status to
// Scaricato, regardless of its workflow status. Orders missing from the
// cache are reported as failed.
func (b *BatchCoordinator) PrintSelection(ctx context.Context, cache *OrderCache, sel *Selection) (*BatchResult, error) {
	result := newBatchResult()
	for _, id := range sel.IDs() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		order, ok := cache.Get(id)
		if !ok {
			result.Failed[id] = "order missing from cache"
			continue
		}

		label, err := b.renderer.RenderPNG(order, 1)
		if err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		if err := b.printer.Print(ctx, id, label); err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		if err := b.statuses.MarkDownloaded(ctx, cache, id); err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		result.Processed = append(result.Processed, id)
	}
	batchOperationsTotal.WithLabelValues("print").Inc()
	return result, nil
}

// ExportSelection renders each selected order's label at export quality,
// stores it under labels/etichetta-<id>.png and marks the order Scaricato.
// Without a configured label storage every selected order fails.
// Items are processed strictly one at a time so the capture surface stays
// singular; a short settling pause separates consecutive renders.
func (b *BatchCoordinator) ExportSelection(ctx context.Context, cache *OrderCache, sel *Selection) (*BatchResult, error) {
	result := newBatchResult()
	if b.labels == nil {
		// No storage configured: every selected order fails, none is
		// marked downloaded.
		for _, id := range sel.IDs() {
			result.Failed[id] = "export storage unavailable"
		}
		batchOperationsTotal.WithLabelValues("export").Inc()
		return result, nil
	}
	for _, id := range sel.IDs() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		order, ok := cache.Get(id)
		if !ok {
			result.Failed[id] = "order missing from cache"
			continue
		}

		if b.settle > 0 {
			time.Sleep(b.settle)
		}
		label, err := b.renderer.RenderPNG(order, ExportScale)
		if err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		key := "labels/" + LabelFileName(id)
		if err := b.labels.UploadLabel(ctx, key, label); err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		if err := b.statuses.MarkDownloaded(ctx, cache, id); err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		result.Processed = append(result.Processed, id)
	}
	batchOperationsTotal.WithLabelValues("export").Inc()
	return result, nil
}

// DeleteSelection deletes every selected order concurrently. The batch is
// best-effort, not transactional: whatever the per-item outcomes, all
// selected IDs are removed from the local cache and the selection is
// cleared. Per-item failures are reported so the caller can tell the user.
func (b *BatchCoordinator) DeleteSelection(ctx context.Context, cache *OrderCache, sel *Selection) (*BatchResult, error) {
	ids := sel.IDs()
	result := newBatchResult()

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, id := range ids {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			err := b.store.DeleteOrder(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[id] = err.Error()
				return
			}
			result.Processed = append(result.Processed, id)
		}(id)
	}
	wg.Wait()

	cache.RemoveAll(ids)
	sel.ClearAll()
	batchOperationsTotal.WithLabelValues("delete").Inc()
	return result, nil
}

// ExportCSV serializes the currently filtered and selected orders to a CSV
// document with the fixed column set, RFC 4180 quoting included. An empty
// intersection is a validation error, not a silent no-op.
func (b *BatchCoordinator) ExportCSV(filtered []models.Order, sel *Selection) ([]byte, error) {
	if sel.Len() == 0 {
		return nil, &ValidationError{Field: "selection", Message: "no orders selected"}
	}

	var rows []models.Order
	for _, o := range filtered {
		if sel.Has(o.ID) {
			rows = append(rows, o)
		}
	}
	if len(rows) == 0 {
		return nil, &ValidationError{Field: "selection", Message: "no selected orders match the current filter"}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, o := range rows {
		manual := ""
		if o.ManualPrice != nil {
			manual = o.ManualPrice.StringFixed(2)
		}
		record := []string{
			fmt.Sprintf("%d", o.ID),
			o.CustomerName,
			orDash(o.PhoneNumber),
			orDash(o.Address),
			o.ProductType.Name,
			subCategoryName(o),
			fmt.Sprintf("%d", o.Quantity),
			o.Color,
			o.Dimensions,
			o.PriceTotal.StringFixed(2),
			manual,
			o.EffectivePrice().StringFixed(2),
			o.CustomNotes,
			o.CreatedAt.Format("2006-01-02"),
			o.Status,
			o.Barcode,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	batchOperationsTotal.WithLabelValues("csv").Inc()
	return buf.Bytes(), nil
}

func subCategoryName(o models.Order) string {
	if o.SubCategory != nil {
		return o.SubCategory.Name
	}
	return ""
}
