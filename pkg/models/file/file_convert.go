package filemodel

import (
	"context"

	"github.com/classpad/classpad-server/pkg/dbmodels"
	"github.com/classpad/classpad-server/pkg/errcode"
)

type ConvertStartRes struct {
	TaskUUID  string `json:"taskUUID"`
	TaskToken string `json:"taskToken"`
}

// ConvertStart submits an uploaded file to the remote converter. A file is
// converted at most once: a busy or already-failed file rejects with
// FileConvertFailed, a finished one with FileIsConverted, and in neither
// case is a remote call issued. Only NotStarted accepts a submission.
func (m *FileModel) ConvertStart(ctx context.Context, userUUID, fileUUID string) (*ConvertStartRes, error) {
	link, err := m.ds.GetCloudStorageUserFile(fileUUID, userUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if link == nil {
		return nil, errcode.New(errcode.FileNotFound)
	}

	file, err := m.ds.GetCloudStorageFile(fileUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if file == nil {
		return nil, errcode.New(errcode.FileNotFound)
	}

	switch file.ConvertStep {
	case dbmodels.ConvertStepConverting:
		return nil, errcode.New(errcode.FileConvertFailed)
	case dbmodels.ConvertStepDone:
		return nil, errcode.New(errcode.FileIsConverted)
	case dbmodels.ConvertStepFailed:
		return nil, errcode.New(errcode.FileConvertFailed)
	}

	kind := determineTaskKind(file.FileURL)
	taskUUID, err := m.wb.CreateConversionTask(ctx, file.FileURL, kind)
	if err != nil {
		m.logger.Errorln("conversion task submission failed:", err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}

	taskToken, err := m.wb.TaskToken(taskUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}

	if err = m.ds.UpdateFileConvertTask(fileUUID, taskUUID, taskToken, dbmodels.ConvertStepConverting); err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}

	return &ConvertStartRes{
		TaskUUID:  taskUUID,
		TaskToken: taskToken,
	}, nil
}

type ConvertFinishRes struct {
	ConvertStep dbmodels.FileConvertStep `json:"convertStep"`
}

// ConvertFinish polls the remote task and applies its terminal state. A
// task still running reports the current step without mutating anything; a
// file that never started or already finished rejects the call.
func (m *FileModel) ConvertFinish(ctx context.Context, userUUID, fileUUID string) (*ConvertFinishRes, error) {
	link, err := m.ds.GetCloudStorageUserFile(fileUUID, userUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if link == nil {
		return nil, errcode.New(errcode.FileNotFound)
	}

	file, err := m.ds.GetCloudStorageFile(fileUUID)
	if err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}
	if file == nil {
		return nil, errcode.New(errcode.FileNotFound)
	}

	if file.ConvertStep == dbmodels.ConvertStepDone {
		return nil, errcode.New(errcode.FileIsConverted)
	}
	if file.ConvertStep != dbmodels.ConvertStepConverting {
		return nil, errcode.New(errcode.FileConvertFailed)
	}

	status, err := m.wb.QueryConversionTask(ctx, file.TaskUUID, determineTaskKind(file.FileURL))
	if err != nil {
		m.logger.Errorln("conversion task query failed:", err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}

	step := file.ConvertStep
	switch status {
	case "Finished":
		step = dbmodels.ConvertStepDone
	case "Fail":
		step = dbmodels.ConvertStepFailed
	default:
		// still waiting or converting remotely
		return &ConvertFinishRes{ConvertStep: step}, nil
	}

	if !file.ConvertStep.CanTransition(step) {
		return nil, errcode.New(errcode.FileConvertFailed)
	}
	if err = m.ds.UpdateFileConvertStep(fileUUID, step); err != nil {
		m.logger.Errorln(err)
		return nil, errcode.New(errcode.CurrentProcessFailed)
	}

	return &ConvertFinishRes{ConvertStep: step}, nil
}
