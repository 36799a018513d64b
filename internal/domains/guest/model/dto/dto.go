package dto

import (
	"mime/multipart"

	"lodge/internal/domains/guest/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CreateGuestRequest struct {
	FullName    string  `json:"full_name"     validate:"required,max=100"`
	Phone       string  `json:"phone"         validate:"required,max=20"`
	Email       *string `json:"email"         validate:"omitempty,email"`
	Address     *string `json:"address"       validate:"omitempty,max=300"`
	IDProofType *string `json:"id_proof_type" validate:"omitempty,oneof=Aadhaar Passport DrivingLicense VoterID"`
	IDProofNo   *string `json:"id_proof_no"   validate:"omitempty,max=50"`
}

func (c *CreateGuestRequest) ToModel(user string) model.Guest {
	return model.Guest{
		ID:          uuid.NewString(),
		FullName:    c.FullName,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		IDProofType: c.IDProofType,
		IDProofNo:   c.IDProofNo,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateGuestRequest struct {
	FullName    string  `db:"full_name"     json:"full_name"     validate:"omitempty,max=100"`
	Phone       string  `db:"phone"         json:"phone"         validate:"omitempty,max=20"`
	Email       *string `db:"email"         json:"email"         validate:"omitempty,email"`
	Address     *string `db:"address"       json:"address"       validate:"omitempty,max=300"`
	IDProofType *string `db:"id_proof_type" json:"id_proof_type" validate:"omitempty,oneof=Aadhaar Passport DrivingLicense VoterID"`
	IDProofNo   *string `db:"id_proof_no"   json:"id_proof_no"   validate:"omitempty,max=50"`
}

type UploadKycRequest struct {
	Document     *multipart.FileHeader `json:"document" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
	DocumentFile multipart.File        `json:"-"`
}

type UploadKycResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (r *UploadKycResponse) FromModel(url, fileName string) {
	r.URL = url
	r.FileName = fileName
}

type GuestResponse struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	IDProofType string `json:"id_proof_type,omitempty"`
	IDProofNo   string `json:"id_proof_no,omitempty"`
	KycDocument string `json:"kyc_document,omitempty"`
	gDto.Metadata
}

func (r *GuestResponse) FromModel(model model.Guest) {
	r.ID = model.ID
	r.FullName = model.FullName
	r.Phone = model.Phone

	if model.Email != nil {
		r.Email = *model.Email
	}

	if model.Address != nil {
		r.Address = *model.Address
	}

	if model.IDProofType != nil {
		r.IDProofType = *model.IDProofType
	}

	if model.IDProofNo != nil {
		r.IDProofNo = *model.IDProofNo
	}

	if model.KycDocument != nil {
		r.KycDocument = *model.KycDocument
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod)
	}
}
