package malbolge_gen

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	gorm "gorm.io/gorm"
)

// PersistenceConfig locates the SQLite archive of generation results.
type PersistenceConfig struct {
	Name          string   `toml:"name"`
	Path          string   `toml:"path"`
	SQLitePragmas []string `toml:"sqlite_pragmas"`
	SQLiteOptions []string `toml:"sqlite_options"`
}

// Persistence stores verified generation results so batch runs can be
// inspected and compared later.
type Persistence struct {
	Config *PersistenceConfig
	DB     *gorm.DB
}

// GenerationRecord is one archived generation run. Opcodes are stored packed
// at 4 bits per symbol.
type GenerationRecord struct {
	ID                  string `gorm:"primaryKey"`
	Target              string
	PackedOpcodes       []byte `gorm:"type:blob"`
	AsciiSource         string
	Output              []byte `gorm:"type:blob"`
	Evaluations         uint64
	CacheHits           uint64
	Pruned              uint64
	RepeatedStatePruned uint64
	RandomDraws         uint64
	DurationNS          int64
	Steps               uint
	PeakMemoryCells     uint
	CreatedAt           time.Time
}

// NewGenerationRecord flattens a result into an archive row.
func NewGenerationRecord(result *GenerationResult) (*GenerationRecord, error) {
	packed, err := PackOpcodes(result.Opcodes)
	if err != nil {
		return nil, err
	}
	record := &GenerationRecord{
		ID:                  uuid.NewString(),
		Target:              result.Target,
		PackedOpcodes:       packed,
		AsciiSource:         result.AsciiSource,
		Output:              result.MachineOutput,
		Evaluations:         result.Stats.Evaluations,
		CacheHits:           result.Stats.CacheHits,
		Pruned:              result.Stats.Pruned,
		RepeatedStatePruned: result.Stats.RepeatedStatePruned,
		RandomDraws:         result.Stats.RandomDraws,
		DurationNS:          result.Stats.DurationNS,
	}
	if result.Execution != nil {
		record.Steps = result.Execution.Steps
		record.PeakMemoryCells = result.Execution.PeakMemoryCells
	}
	return record, nil
}

// Opcodes unpacks the stored opcode string.
func (r *GenerationRecord) Opcodes() (string, error) {
	return UnpackOpcodes(r.PackedOpcodes)
}

// NewPersistence opens (or creates) the archive database.
func NewPersistence(config *PersistenceConfig) (*Persistence, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if len(config.Path) == 0 {
		return nil, fmt.Errorf("Path to database must be defined")
	}
	if len(config.Name) == 0 {
		return nil, fmt.Errorf("Name of database must be defined")
	}

	var params []string
	for _, prag := range config.SQLitePragmas {
		params = append(params, fmt.Sprintf("_pragma=%s", prag))
	}
	params = append(params, config.SQLiteOptions...)

	var dsn strings.Builder
	dsn.WriteString(filepath.Join(config.Path, config.Name))
	if len(params) > 0 {
		dsn.WriteRune('?')
		dsn.WriteString(strings.Join(params, "&"))
	}

	db, err := gorm.Open(sqlite.Open(dsn.String()), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	db = db.Session(&gorm.Session{PrepareStmt: true, CreateBatchSize: 1000})

	p := &Persistence{Config: config, DB: db}
	if err = p.initialize(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Persistence) initialize() error {
	return p.DB.AutoMigrate(&GenerationRecord{})
}

// SaveResult archives one verified result and returns the stored record.
func (p *Persistence) SaveResult(result *GenerationResult) (*GenerationRecord, error) {
	record, err := NewGenerationRecord(result)
	if err != nil {
		return nil, err
	}
	if err := p.DB.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// SaveRecords archives a batch of records.
func (p *Persistence) SaveRecords(records []*GenerationRecord) error {
	if len(records) == 0 {
		return nil
	}
	return p.DB.Create(records).Error
}

// LoadRecord fetches one archived run by ID.
func (p *Persistence) LoadRecord(id string) (*GenerationRecord, error) {
	var record GenerationRecord
	if err := p.DB.First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// LoadRecordsForTarget fetches every archived run for a target, newest first.
func (p *Persistence) LoadRecordsForTarget(target string) ([]*GenerationRecord, error) {
	var records []*GenerationRecord
	if err := p.DB.Where("target = ?", target).Order("created_at desc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Shutdown closes the underlying connection pool.
func (p *Persistence) Shutdown() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
