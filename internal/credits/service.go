package credits

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/apperrors"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/chain"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/workflows"
)

type Service interface {
	Mint(ctx context.Context, req MintCreditRequest) (*CarbonCreditNFT, error)
	List(ctx context.Context) ([]CarbonCreditNFT, error)
	Get(ctx context.Context, id string) (*CarbonCreditNFT, error)
	Transfer(ctx context.Context, id string, req TransferCreditRequest) (*CarbonCreditNFT, error)
	Retire(ctx context.Context, id string) (*CarbonCreditNFT, error)
}

type service struct {
	repo         Repository
	chainClient  chain.Client
	stateMachine *workflows.StateMachine
	logger       *zap.Logger
}

func NewService(repo Repository, chainClient chain.Client, logger *zap.Logger) Service {
	return &service{
		repo:         repo,
		chainClient:  chainClient,
		stateMachine: workflows.NewCreditStateMachine(),
		logger:       logger,
	}
}

// Mint issues one credit token against an approved verification report. A
// report backs at most one token; anything not yet approved is a conflict.
func (s *service) Mint(ctx context.Context, req MintCreditRequest) (*CarbonCreditNFT, error) {
	recipient := strings.TrimSpace(req.Recipient)
	if req.Report == "" || recipient == "" {
		return nil, apperrors.NewValidation("report and recipient are required")
	}

	reportID, err := primitive.ObjectIDFromHex(req.Report)
	if err != nil {
		return nil, apperrors.NewValidation("invalid report id")
	}

	report, err := s.repo.GetReportSnapshot(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.Status != "APPROVED" {
		return nil, apperrors.ErrInvalidTransition
	}

	minted, err := s.repo.ExistsByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if minted {
		return nil, apperrors.NewValidation("a credit has already been minted for this report")
	}

	result, err := s.chainClient.MintCreditToken(ctx, &chain.MintRequest{
		ReportID:  report.ID.Hex(),
		ProjectID: report.Project.Hex(),
		Amount:    report.VerifiedCarbonAmount,
		Recipient: recipient,
	})
	if err != nil {
		return nil, err
	}

	credit := &CarbonCreditNFT{
		Report:          report.ID,
		Project:         report.Project,
		TokenID:         result.TokenID,
		ContractAddress: result.ContractAddress,
		TransactionHash: result.TransactionHash,
		Amount:          report.VerifiedCarbonAmount,
		Owner:           recipient,
		Status:          StatusMinted,
	}
	if err := s.repo.Create(ctx, credit); err != nil {
		return nil, err
	}

	s.logger.Info("carbon credit minted",
		zap.String("id", credit.ID.Hex()),
		zap.String("token_id", credit.TokenID),
		zap.String("report", credit.Report.Hex()),
		zap.Float64("amount", credit.Amount))
	return credit, nil
}

func (s *service) List(ctx context.Context) ([]CarbonCreditNFT, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*CarbonCreditNFT, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewValidation("invalid credit id")
	}
	return s.repo.GetByID(ctx, oid)
}

// Transfer reassigns a live token to a new owner. Retired tokens cannot move.
func (s *service) Transfer(ctx context.Context, id string, req TransferCreditRequest) (*CarbonCreditNFT, error) {
	to := strings.TrimSpace(req.To)
	if to == "" {
		return nil, apperrors.NewValidation("to is required")
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewValidation("invalid credit id")
	}

	current, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !s.stateMachine.CanTransition(current.Status, StatusTransferred) {
		return nil, apperrors.ErrInvalidTransition
	}

	return s.repo.Update(ctx, oid, bson.M{"owner": to, "status": StatusTransferred})
}

// Retire permanently takes a token out of circulation.
func (s *service) Retire(ctx context.Context, id string) (*CarbonCreditNFT, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewValidation("invalid credit id")
	}

	current, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if current.Status == StatusRetired {
		return current, nil
	}
	if !s.stateMachine.CanTransition(current.Status, StatusRetired) {
		return nil, apperrors.ErrInvalidTransition
	}

	return s.repo.Update(ctx, oid, bson.M{"status": StatusRetired})
}
