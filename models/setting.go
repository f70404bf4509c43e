package models

import "gorm.io/gorm"

// Setting is the singleton application configuration row. Seeded by
// database.SeedSettings with the default reward policy.
type Setting struct {
	ID             int     `gorm:"primaryKey" json:"id"`
	Name           string  `gorm:"size:100" json:"name"`
	MinWithdraw    float64 `gorm:"type:decimal(15,2);default:50" json:"min_withdraw"`
	MaxWithdraw    float64 `gorm:"type:decimal(15,2);default:10000" json:"max_withdraw"`
	SignupBonus    float64 `gorm:"type:decimal(15,2);default:5" json:"signup_bonus"`
	FirstTaskBonus float64 `gorm:"type:decimal(15,2);default:10" json:"first_task_bonus"`
	Maintenance    bool    `gorm:"default:false" json:"maintenance"`
	ClosedRegister bool    `gorm:"default:false" json:"closed_register"`
	LinkSupport    string  `gorm:"size:255" json:"link_support"`
}

func (Setting) TableName() string {
	return "settings"
}

// GetSetting returns the singleton settings row.
func GetSetting(db *gorm.DB) (*Setting, error) {
	var setting Setting
	if err := db.Take(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}
