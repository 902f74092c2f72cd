package model

import (
	"time"
)

type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleTeacher   UserRole = "teacher"
	RoleCounselor UserRole = "counselor"
	RoleAdmin     UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;default:'student'" json:"role"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// Section 班级
type Section struct {
	BaseModel
	Name       string `gorm:"size:100;not null" json:"name"`
	GradeLevel int    `json:"gradeLevel"`
}

func (Section) TableName() string {
	return "sections"
}

// Student 学生档案，与 User 一对一
type Student struct {
	BaseModel
	UserID    uint     `gorm:"uniqueIndex;not null" json:"userId"`
	SectionID *uint    `gorm:"index" json:"sectionId,omitempty"`
	User      *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Section   *Section `gorm:"foreignKey:SectionID" json:"section,omitempty"`
}

func (Student) TableName() string {
	return "students"
}
