package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/garnishedge/garnishedge_backend/ach"
	"github.com/garnishedge/garnishedge_backend/config"
	"github.com/garnishedge/garnishedge_backend/export"
	"github.com/garnishedge/garnishedge_backend/models"
	"github.com/garnishedge/garnishedge_backend/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GenerateRequest is one file-generation run. Orders arrive already filtered
// and amount-resolved; this workflow only sequences, encodes and exports.
type GenerateRequest struct {
	Orders         []ach.Order
	PayDate        time.Time
	FileIdModifier string // auto-allocated when blank
	BatchNumber    int    // auto-allocated when <= 0
	Format         export.Format
	AgencyPayee    string
	StoreFile      bool
	GeneratedBy    string
}

type GenerateResult struct {
	FileName       string
	ContentType    string
	Content        []byte
	Stats          ach.Stats
	FileIdModifier string
	BatchNumber    int
	MetadataSaved  bool
}

// GenerateAchFile runs validation, sequence allocation, assembly and export
// for one request. Sequence allocation is transactional: the pay-date lock
// is held from the used-modifier read until the reservation row has
// committed, so concurrent runs for the same date cannot claim the same
// modifier.
func GenerateAchFile(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	logger := config.GetLogger()

	if len(req.Orders) == 0 {
		return nil, ach.ErrNoOrders
	}
	// All-or-nothing: one bad order rejects the batch before anything is
	// allocated or written.
	if verr := ach.ValidateOrders(req.Orders); verr != nil {
		return nil, verr
	}

	fileCfg, err := resolveFileConfig(ctx)
	if err != nil {
		return nil, err
	}

	payDate := ach.ResolvePayDate(req.PayDate)
	generatedAt := time.Now()

	// Best-effort Redis lock first; the MySQL advisory lock below is the
	// actual guard.
	if lock := obtainRedisSequenceLock(ctx, payDate); lock != nil {
		defer lock.Release(ctx)
	}

	var (
		modifier      = req.FileIdModifier
		batchNumber   = req.BatchNumber
		generated     *ach.GeneratedFile
		content       []byte
		fileName      string
		metadataSaved bool
	)

	// GET_LOCK is session-scoped, not transaction-scoped. Everything runs
	// on one pinned connection so the lock outlives the reservation
	// transaction's commit; releasing before commit would let a concurrent
	// run read the used modifiers without seeing the uncommitted row.
	db := config.GetDB()
	err = db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		if err := AcquireSequenceLock(conn, payDate); err != nil {
			return err
		}
		defer ReleaseSequenceLock(conn, payDate)

		tx := conn.Begin()
		if tx.Error != nil {
			return tx.Error
		}

		if modifier == "" {
			used, err := models.UsedFileIdModifiers(tx, payDate)
			if err != nil {
				tx.Rollback()
				return err
			}
			modifier, err = NextFileIdModifier(used)
			if err != nil {
				tx.Rollback()
				return err
			}
		}

		if batchNumber <= 0 {
			maxBatch, err := models.MaxBatchNumber(tx, payDate)
			if err != nil {
				tx.Rollback()
				return err
			}
			batchNumber = NextBatchNumber(maxBatch)
		}

		var err error
		generated, err = ach.BuildFile(fileCfg, ach.RunParams{
			PayDate:        payDate,
			FileIdModifier: modifier,
			BatchNumber:    batchNumber,
			CreationTime:   generatedAt,
		}, req.Orders, logger)
		if err != nil {
			tx.Rollback()
			return err
		}

		meta := export.Metadata{
			PayDate:     payDate,
			AgencyPayee: req.AgencyPayee,
			EntryCount:  generated.Stats.EntryCount,
			TotalAmount: generated.Stats.TotalCredit,
			GeneratedAt: generatedAt,
		}
		content, err = export.Render(req.Format, generated.Text, meta, logger)
		if err != nil {
			tx.Rollback()
			return err
		}
		fileName = export.Filename(meta, modifier, req.Format)

		if !req.StoreFile {
			// Preview run: no reservation to persist.
			tx.Rollback()
			return nil
		}

		record := buildMetadataRecord(req, generated, fileName, len(content), payDate, modifier, batchNumber, fileCfg.OriginatingDfiId)
		if err := tx.Create(record).Error; err != nil {
			tx.Rollback()
			if isDuplicateKey(err) {
				// An explicitly requested modifier collided with an
				// existing reservation for the pay date.
				return ach.ErrModifierTaken
			}
			// The encoded artifact is still returned to the caller even
			// when its metadata could not be saved.
			config.LogError(logger, "achFileWorkflow.go", "GenerateAchFile", "save metadata", fileName, err)
			return nil
		}
		if err := tx.Commit().Error; err != nil {
			config.LogError(logger, "achFileWorkflow.go", "GenerateAchFile", "commit metadata", fileName, err)
			return nil
		}
		metadataSaved = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	archiveArtifact(ctx, fileName, req.Format, content, logger)

	return &GenerateResult{
		FileName:       fileName,
		ContentType:    req.Format.ContentType(),
		Content:        content,
		Stats:          generated.Stats,
		FileIdModifier: modifier,
		BatchNumber:    batchNumber,
		MetadataSaved:  metadataSaved,
	}, nil
}

const fileConfigCacheKey = "ach:fileconfig"

// isDuplicateKey recognizes a unique-index violation from the MySQL driver,
// with or without gorm's error translation enabled (MySQL error 1062).
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

// resolveFileConfig merges the garnishment configuration row and the
// originating bank record into the assembler's read-only config. The merged
// result is cached in Redis for a short window; configuration rows change
// rarely and every generation run reads them.
func resolveFileConfig(ctx context.Context) (ach.FileConfig, error) {
	var cached ach.FileConfig
	if hit, err := config.GetRedisObject(fileConfigCacheKey, &cached); err == nil && hit && cached.CompanyId != "" {
		return cached, nil
	}

	cfg, err := models.GetActiveAchConfig(ctx)
	if err != nil {
		return ach.FileConfig{}, err
	}
	if cfg == nil {
		return ach.FileConfig{}, ach.ErrNoConfiguration
	}

	bank, err := models.GetActiveBankDetails(ctx, cfg.CompanyId)
	if err != nil {
		return ach.FileConfig{}, err
	}
	originatingRouting := cfg.PeosBankRoutingNumber
	if bank != nil {
		originatingRouting = bank.OriginatingRoutingNumber
	}
	dfiId := originatingRouting
	if len(dfiId) > 8 {
		dfiId = dfiId[:8]
	}

	resolved := ach.FileConfig{
		ImmediateDestination:     cfg.PeosBankRoutingNumber,
		ImmediateOrigin:          cfg.CompanyId,
		ImmediateDestinationName: cfg.PeosBankName,
		ImmediateOriginName:      cfg.CompanyName,
		CompanyName:              cfg.CompanyName,
		CompanyId:                cfg.CompanyId,
		StandardEntryClass:       cfg.PaymentType,
		ServiceClassCode:         cfg.ServiceClassCode,
		OriginatingDfiId:         dfiId,
		EntryDescription:         cfg.EntryDescription,
		TransactionCode:          cfg.ResolveTransactionCode(),
	}
	_ = config.SetRedisObject(fileConfigCacheKey, resolved, 5*time.Minute)
	return resolved, nil
}

func buildMetadataRecord(req GenerateRequest, generated *ach.GeneratedFile, fileName string, fileSize int, payDate time.Time, modifier string, batchNumber int, dfiId string) *models.AchFile {
	caseIds := make([]string, 0, len(req.Orders))
	for _, order := range req.Orders {
		caseIds = append(caseIds, order.CaseId)
	}
	// One employee can carry several orders against the same case.
	caseIdsJSON, _ := json.Marshal(utils.UniqueSlice(caseIds))

	refs := make([]string, 0, generated.Stats.EntryCount)
	for i := 1; i <= generated.Stats.EntryCount; i++ {
		refs = append(refs, fmt.Sprintf("Trace: %s%07d", ach.PadNumber(dfiId, 8), i))
	}
	refsJSON, _ := json.Marshal(refs)

	return &models.AchFile{
		FileName:              fileName,
		FileFormat:            string(req.Format),
		FileSize:              fileSize,
		GeneratedBy:           req.GeneratedBy,
		PayDate:               payDate,
		AgencyPayee:           req.AgencyPayee,
		TotalPaymentCount:     generated.Stats.EntryCount,
		TotalPaymentAmount:    generated.Stats.TotalCredit,
		BatchId:               fmt.Sprint(batchNumber),
		FileIdModifier:        modifier,
		AssociatedCaseIds:     string(caseIdsJSON),
		TransactionReferences: string(refsJSON),
		IsActive:              utils.NewTrue(),
	}
}

// archiveArtifact uploads the rendered bytes for audit retention when a
// bucket is configured. Failures are logged, never fatal: the caller still
// receives the artifact in the response.
func archiveArtifact(ctx context.Context, fileName string, format export.Format, content []byte, logger *logrus.Logger) {
	if !utils.ArchiveEnabled() {
		return
	}
	if err := utils.ArchiveArtifactToGCS(ctx, fileName, format.ContentType(), content); err != nil {
		logger.Warnf("failed to archive %s: %v", fileName, err)
	}
}
