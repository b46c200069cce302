package delivery

import "farmtally-backend/internal/domain/actor"

// Field names the mutable columns of a delivery for capability checks.
type Field string

const (
	FieldBagsCount         Field = "bags_count"
	FieldIndividualWeights Field = "individual_weights"
	FieldMoistureContent   Field = "moisture_content"
	FieldNotes             Field = "notes"
	FieldQualityDeduction  Field = "quality_deduction"
	FieldQualityGrade      Field = "quality_grade"
	FieldPricePerKg        Field = "price_per_kg"
)

// mutable is the single capability table gating field mutation by
// (role, delivery status). Field managers own the raw input and only
// while the delivery is still PENDING; the farm admin owns quality and
// pricing in every non-COMPLETED state (the lorry-terminal check lives
// in the orchestrator, it depends on the parent row).
var mutable = map[actor.Role]map[Status][]Field{
	actor.RoleFieldManager: {
		StatusPending: {FieldBagsCount, FieldIndividualWeights, FieldMoistureContent, FieldNotes},
	},
	actor.RoleFarmAdmin: {
		StatusPending:    {FieldQualityDeduction, FieldQualityGrade, FieldPricePerKg},
		StatusInProgress: {FieldQualityDeduction, FieldQualityGrade, FieldPricePerKg},
		StatusProcessed:  {FieldQualityDeduction, FieldQualityGrade, FieldPricePerKg},
	},
}

// CanMutate reports whether role may write field while the delivery
// sits in status.
func CanMutate(role actor.Role, status Status, field Field) bool {
	for _, f := range mutable[role][status] {
		if f == field {
			return true
		}
	}
	return false
}
