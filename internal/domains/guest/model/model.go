package model

import "lodge/shared/model"

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID          = "id"
	FieldFullName    = "full_name"
	FieldPhone       = "phone"
	FieldEmail       = "email"
	FieldAddress     = "address"
	FieldIDProofType = "id_proof_type"
	FieldIDProofNo   = "id_proof_no"
	FieldKycDocument = "kyc_document"
)

const (
	IDProofAadhaar  = "Aadhaar"
	IDProofPassport = "Passport"
	IDProofLicense  = "DrivingLicense"
	IDProofVoterID  = "VoterID"
)

type Guest struct {
	ID          string  `db:"id"`
	FullName    string  `db:"full_name"`
	Phone       string  `db:"phone"`
	Email       *string `db:"email"`
	Address     *string `db:"address"`
	IDProofType *string `db:"id_proof_type"`
	IDProofNo   *string `db:"id_proof_no"`
	KycDocument *string `db:"kyc_document"`
	model.Metadata
}
