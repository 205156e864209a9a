package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ezakat/internal/model"
	"ezakat/internal/zakat"

	"github.com/google/uuid"
)

// ErrRecordMapping marks a persistence-mapping failure. It is never a
// calculation failure: a stored result is immutable once produced, so a
// bad row is surfaced as-is and the engine is never re-run to "repair"
// it (rates may have changed since).
var ErrRecordMapping = errors.New("RecordMappingError")

// toCalculationRecord maps a fresh engine result onto a persistable row.
// The raw inputs ride along as JSON for audit and replay.
func toCalculationRecord(result zakat.Result, inputs zakat.Inputs, ownerID uuid.UUID, evaluatedAt time.Time) (model.ZakatCalculation, error) {
	rawInputs, err := json.Marshal(inputs)
	if err != nil {
		return model.ZakatCalculation{}, fmt.Errorf("%w: encode inputs: %v", ErrRecordMapping, err)
	}

	record := model.ZakatCalculation{
		UserID:          ownerID,
		Category:        string(result.Category),
		Inputs:          string(rawInputs),
		GrossAmount:     result.GrossAmount,
		TotalDeductions: result.TotalDeductions,
		NetAmount:       result.NetAmount,
		NisabThreshold:  result.NisabThreshold,
		RateApplied:     result.RateApplied,
		Status:          result.Status,
		ZakatDue:        result.ZakatDue,
		EvaluatedAt:     evaluatedAt,
	}

	if result.Haul != nil {
		start := result.Haul.StartDate
		end := result.Haul.EndDate
		record.HaulStartDate = &start
		record.HaulEndDate = &end
	}

	return record, nil
}

// calculationResultFromRecord rebuilds the engine result a stored row
// snapshotted. The haul window, when present, is re-derived from the
// stored dates at the original evaluation instant, not against "now".
func calculationResultFromRecord(record model.ZakatCalculation) (zakat.Result, error) {
	category, err := zakat.ParseCategory(record.Category)
	if err != nil {
		return zakat.Result{}, fmt.Errorf("%w: stored category %q: %v", ErrRecordMapping, record.Category, err)
	}

	if record.Status != model.StatusWajib && record.Status != model.StatusTidakWajib {
		return zakat.Result{}, fmt.Errorf("%w: stored status %q", ErrRecordMapping, record.Status)
	}

	result := zakat.Result{
		Category:        category,
		GrossAmount:     record.GrossAmount,
		TotalDeductions: record.TotalDeductions,
		NetAmount:       record.NetAmount,
		NisabThreshold:  record.NisabThreshold,
		RateApplied:     record.RateApplied,
		Status:          record.Status,
		ZakatDue:        record.ZakatDue,
	}

	if record.HaulStartDate != nil {
		if record.HaulEndDate == nil {
			return zakat.Result{}, fmt.Errorf("%w: haul start date without end date", ErrRecordMapping)
		}
		days := int(record.HaulEndDate.Sub(*record.HaulStartDate).Hours() / 24)
		window, err := zakat.EvaluateHaul(*record.HaulStartDate, days, record.EvaluatedAt)
		if err != nil {
			return zakat.Result{}, fmt.Errorf("%w: stored haul dates: %v", ErrRecordMapping, err)
		}
		result.Haul = &window
	}

	return result, nil
}

// decodeRecordInputs restores the raw inputs stored with a calculation.
func decodeRecordInputs(record model.ZakatCalculation) (zakat.Inputs, error) {
	var inputs zakat.Inputs
	if err := json.Unmarshal([]byte(record.Inputs), &inputs); err != nil {
		return zakat.Inputs{}, fmt.Errorf("%w: decode inputs: %v", ErrRecordMapping, err)
	}
	return inputs, nil
}
