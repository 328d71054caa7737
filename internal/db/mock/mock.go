package mock

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "zinclab/internal/log"
	"zinclab/models"
)

// New returns an in-memory sqlite database seeded with representative lab data.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:zinclab-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.ExperimentRecord{},
		&models.DesFormula{},
		&models.HydrogelFormula{},
		&models.TestResult{},
		&models.Attachment{},
	); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte("electrolyte"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		DisplayName:  "Lin Zhao",
		Email:        "lin@zinclab.app",
		PasswordHash: string(password),
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	water := 5.0
	capacity := 118.4
	retention := 86.2

	desRecord := models.ExperimentRecord{
		OwnerID:      user.ID,
		Title:        "ChCl:EG (1:2) + 2M ZnSO4 cycling",
		ResearchType: models.ResearchTypeDES,
		Tags:         datatypes.NewJSONSlice([]string{"ZnSO4", "ChCl", "EG"}),
		Visibility:   models.VisibilityPrivate,
	}
	if err := db.WithContext(ctx).Create(&desRecord).Error; err != nil {
		return err
	}

	desFormula := models.DesFormula{
		RecordID:          desRecord.ID,
		HbaName:           "Choline chloride",
		HbaPurity:         "98%",
		HbaSupplier:       "Aladdin",
		HbdName:           "Ethylene glycol",
		HbdPurity:         "99.5%",
		MolarRatio:        "1:2",
		WaterContent:      &water,
		WaterContentUnit:  "wt%",
		SaltName:          "ZnSO4",
		SaltConcentration: "2 M",
		Additives:         models.AdditiveList("urea", "glycerol"),
		PreparationTemp:   "80 C",
		StirringTime:      "2 h",
		Appearance:        "clear, colorless",
		Notes:             "Dried HBA overnight before mixing.",
	}
	if err := db.WithContext(ctx).Create(&desFormula).Error; err != nil {
		return err
	}

	desResult := models.TestResult{
		RecordID:      desRecord.ID,
		Capacity:      &capacity,
		Retention:     &retention,
		Conclusion:    "Stable plating/stripping over 200 cycles; no visible dendrites.",
		FailureReason: "",
	}
	if err := db.WithContext(ctx).Create(&desResult).Error; err != nil {
		return err
	}

	gelRecord := models.ExperimentRecord{
		OwnerID:      user.ID,
		Title:        "PVA/ZnSO4 hydrogel freeze-thaw trial",
		ResearchType: models.ResearchTypeHydrogel,
		Tags:         datatypes.NewJSONSlice([]string{"PVA", "freeze-thaw"}),
		Visibility:   models.VisibilityPrivate,
	}
	if err := db.WithContext(ctx).Create(&gelRecord).Error; err != nil {
		return err
	}

	gelFormula := models.HydrogelFormula{
		RecordID:          gelRecord.ID,
		PolymerType:       "PVA",
		PolymerContent:    "10 wt%",
		CrosslinkMethod:   "freeze-thaw",
		SolventSystem:     "water",
		SaltConcentration: "2 M ZnSO4",
		PreparationSteps:  "Three freeze-thaw cycles at -20 C.",
		GelProperties:     "Self-standing, slightly opaque.",
	}
	if err := db.WithContext(ctx).Create(&gelFormula).Error; err != nil {
		return err
	}

	gelResult := models.TestResult{
		RecordID:      gelRecord.ID,
		Conclusion:    "Gel dries out at the edges after 48 h open-air testing.",
		FailureReason: "Water loss through the unsealed cell gasket.",
	}
	if err := db.WithContext(ctx).Create(&gelResult).Error; err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
