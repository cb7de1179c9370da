package dbservice

import (
	"errors"

	"github.com/classpad/classpad-server/pkg/dbmodels"
	"gorm.io/gorm"
)

func (s *DatabaseService) GetCloudStorageFile(fileUUID string) (*dbmodels.CloudStorageFile, error) {
	file := new(dbmodels.CloudStorageFile)
	cond := &dbmodels.CloudStorageFile{
		FileUUID: fileUUID,
	}

	result := s.db.Where(cond).Take(file)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return file, nil
}

func (s *DatabaseService) GetCloudStorageUserFile(fileUUID, userUUID string) (*dbmodels.CloudStorageUserFile, error) {
	link := new(dbmodels.CloudStorageUserFile)
	cond := &dbmodels.CloudStorageUserFile{
		FileUUID: fileUUID,
		UserUUID: userUUID,
	}

	result := s.db.Where(cond).Take(link)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return link, nil
}

func (s *DatabaseService) InsertCloudStorageFile(file *dbmodels.CloudStorageFile) error {
	return s.db.Create(file).Error
}

func (s *DatabaseService) InsertCloudStorageUserFile(link *dbmodels.CloudStorageUserFile) error {
	return s.db.Create(link).Error
}

// UpdateFileConvertTask stores the remote task reference together with the
// step change, keeping the committed row self-consistent.
func (s *DatabaseService) UpdateFileConvertTask(fileUUID, taskUUID, taskToken string, step dbmodels.FileConvertStep) error {
	return s.db.Model(&dbmodels.CloudStorageFile{}).
		Where(&dbmodels.CloudStorageFile{FileUUID: fileUUID}).
		Updates(map[string]interface{}{
			"task_uuid":    taskUUID,
			"task_token":   taskToken,
			"convert_step": step,
		}).Error
}

func (s *DatabaseService) UpdateFileConvertStep(fileUUID string, step dbmodels.FileConvertStep) error {
	return s.db.Model(&dbmodels.CloudStorageFile{}).
		Where(&dbmodels.CloudStorageFile{FileUUID: fileUUID}).
		Update("convert_step", step).Error
}
