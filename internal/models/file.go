package models

// FileModel is the metadata of an uploaded study material.
// The AI pipeline only reads it; uploads are handled elsewhere.
type FileModel struct {
	Base
	Title       string `json:"title"                 gorm:"not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`
	Subject     string `json:"subject,omitempty"     gorm:"index"`
	FileName    string `json:"fileName"`
	FileURL     string `json:"fileUrl"`
	MimeType    string `json:"mimeType,omitempty"`
	Size        int64  `json:"size"`
	UploadedBy  string `json:"uploadedBy,omitempty"  gorm:"index"`
}

func (FileModel) TableName() string { return "files" }
