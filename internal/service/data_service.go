package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"barber-pos-api/internal/backup"
	"barber-pos-api/internal/model"
	"barber-pos-api/internal/repository"
	"barber-pos-api/internal/ws"
	"barber-pos-api/pkg/idgen"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var ErrBackupNotConfigured = newErr(KindValidation, "Backups not configured")

type BackupResult struct {
	Location string    `json:"location"`
	TakenAt  time.Time `json:"taken_at"`
	Size     int       `json:"size"`
}

type DataService interface {
	Export(ctx context.Context) (*model.Snapshot, error)
	Import(ctx context.Context, snap *model.Snapshot, actor Actor) error
	Clear(ctx context.Context, actor Actor) error
	Backup(ctx context.Context, actor Actor) (*BackupResult, error)
}

type dataService struct {
	db       *gorm.DB
	dataRepo repository.DataRepository
	ids      idgen.Generator
	store    backup.Store
	events   EventPublisher
	log      zerolog.Logger
	now      func() time.Time
}

// NewDataService wires export/import/clear. store may be nil when backups are off.
func NewDataService(db *gorm.DB, dataRepo repository.DataRepository, ids idgen.Generator, store backup.Store, events EventPublisher, log zerolog.Logger) DataService {
	return &dataService{
		db:       db,
		dataRepo: dataRepo,
		ids:      ids,
		store:    store,
		events:   events,
		log:      log,
		now:      time.Now,
	}
}

func (s *dataService) Export(ctx context.Context) (*model.Snapshot, error) {
	snap, err := s.dataRepo.WithTx(s.db.WithContext(ctx)).Load()
	if err != nil {
		return nil, internalErr("Failed to export data", err)
	}
	snap.ExportedAt = s.now().UTC()
	return snap, nil
}

// Import replaces every domain table with the snapshot. Headers without an id get a fresh one.
func (s *dataService) Import(ctx context.Context, snap *model.Snapshot, actor Actor) error {
	if snap == nil {
		return validationErr("Import document is empty")
	}
	for i := range snap.Sales {
		if snap.Sales[i].ID == 0 {
			snap.Sales[i].ID = s.ids.NextID()
		}
	}
	for i := range snap.PurchaseInvoices {
		if snap.PurchaseInvoices[i].ID == 0 {
			snap.PurchaseInvoices[i].ID = s.ids.NextID()
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.dataRepo.WithTx(tx)
		if err := repo.ClearAll(); err != nil {
			return err
		}
		return repo.Insert(snap)
	})
	if err != nil {
		loggerFrom(ctx, s.log).Error().Err(err).Msg("import rolled back")
		if repository.IsDuplicate(err) || repository.IsForeignKey(err) {
			return ErrImportInconsistent
		}
		return internalErr("Failed to import data", err)
	}

	s.publish(ws.Event{
		Type:   "utility",
		Action: "data_imported",
		Data: map[string]int{
			"categories":       len(snap.Categories),
			"products":         len(snap.Products),
			"employees":        len(snap.Employees),
			"sales":            len(snap.Sales),
			"purchaseInvoices": len(snap.PurchaseInvoices),
		},
		User:    actor.Username,
		Message: fmt.Sprintf("%s imported data", actor.Username),
	})
	return nil
}

func (s *dataService) Clear(ctx context.Context, actor Actor) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.dataRepo.WithTx(tx).ClearAll()
	})
	if err != nil {
		return internalErr("Failed to clear data", err)
	}
	loggerFrom(ctx, s.log).Warn().Str("user", actor.Username).Msg("all domain data cleared")
	s.publish(ws.Event{
		Type:    "utility",
		Action:  "data_cleared",
		User:    actor.Username,
		Message: fmt.Sprintf("%s cleared all data", actor.Username),
	})
	return nil
}

func (s *dataService) Backup(ctx context.Context, actor Actor) (*BackupResult, error) {
	if s.store == nil {
		return nil, ErrBackupNotConfigured
	}
	snap, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, internalErr("Failed to encode backup", err)
	}
	location, err := s.store.Save(ctx, backup.ObjectName(snap.ExportedAt), data)
	if err != nil {
		return nil, internalErr("Failed to save backup", err)
	}
	loggerFrom(ctx, s.log).Info().Str("location", location).Int("bytes", len(data)).Str("user", actor.Username).Msg("backup saved")
	return &BackupResult{Location: location, TakenAt: snap.ExportedAt, Size: len(data)}, nil
}

func (s *dataService) publish(evt ws.Event) {
	if s.events != nil {
		s.events.Publish(evt)
	}
}
