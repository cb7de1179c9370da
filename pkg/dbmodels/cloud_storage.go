package dbmodels

import (
	"time"
)

type CloudStorageFile struct {
	ID          uint64          `gorm:"column:id;primaryKey;AUTO_INCREMENT"`
	FileUUID    string          `gorm:"column:file_uuid;size:40;uniqueIndex;NOT NULL"`
	FileName    string          `gorm:"column:file_name;size:128;NOT NULL"`
	FileURL     string          `gorm:"column:file_url;size:256;NOT NULL"`
	ConvertStep FileConvertStep `gorm:"column:convert_step;size:32;NOT NULL"`
	TaskUUID    string          `gorm:"column:task_uuid;size:40;NOT NULL"`
	TaskToken   string          `gorm:"column:task_token;size:256;NOT NULL"`
	Created     time.Time       `gorm:"column:created;autoCreateTime;NOT NULL"`
	Modified    time.Time       `gorm:"column:modified;autoUpdateTime;NOT NULL"`
}

func (m *CloudStorageFile) TableName() string {
	return "cp_cloud_storage_files"
}

// CloudStorageUserFile links an uploaded file to its owner. Conversion may
// only be requested through this link.
type CloudStorageUserFile struct {
	ID       uint64    `gorm:"column:id;primaryKey;AUTO_INCREMENT"`
	FileUUID string    `gorm:"column:file_uuid;size:40;uniqueIndex:idx_user_file,priority:1;NOT NULL"`
	UserUUID string    `gorm:"column:user_uuid;size:40;uniqueIndex:idx_user_file,priority:2;NOT NULL"`
	Created  time.Time `gorm:"column:created;autoCreateTime;NOT NULL"`
}

func (m *CloudStorageUserFile) TableName() string {
	return "cp_cloud_storage_user_files"
}
