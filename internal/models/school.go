package models

type SchoolSettings struct {
	Name string `db:"name" json:"name" validate:"required,max=150"`
	Logo string `db:"logo" json:"logo"`
}

func DefaultSchoolSettings() SchoolSettings {
	return SchoolSettings{Name: "EduManager"}
}
