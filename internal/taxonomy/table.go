package taxonomy

// exerciseTable is the static exercise database. Insertion order is
// significant: Lookup resolves ambiguous substring matches to the first
// entry, and SelectRepresentative breaks score ties by input order.
//
//nolint:gochecknoglobals // fixed seed data, never mutated.
var exerciseTable = []ExerciseDefinition{
	// Knee-dominant.
	{Name: "Barbell Back Squat", Category: CategoryKneeDominant, Equipment: EquipmentBarbell,
		PrimaryMuscles: []string{"quadriceps", "glutes"}, IsCompound: true, Difficulty: DifficultyIntermediate},
	{Name: "Barbell Front Squat", Category: CategoryKneeDominant, Equipment: EquipmentBarbell,
		PrimaryMuscles: []string{"quadriceps", "core"}, IsCompound: true, Difficulty: DifficultyAdvanced},
	{Name: "Goblet Squat", Category: CategoryKneeDominant, Equipment: EquipmentDumbbell,
		PrimaryMuscles: []string{"quadriceps", "glutes"}, IsCompound: true, Difficulty: DifficultyBeginner},
	{Name: "Leg Press", Category: CategoryKneeDominant, Equipment: EquipmentMachine,
		PrimaryMuscles: []string{"quadriceps", "glutes"}, IsCompound: true, Difficulty: DifficultyBeginner},
	{Name: "Bodyweight Squat", Category: CategoryKneeDominant, Equipment: EquipmentBodyweight,
		PrimaryMuscles: []string{"quadriceps", "glutes"}, IsCompound: true, Difficulty: DifficultyBeginner},

	// Hip-dominant.
	{Name: "Barbell Deadlift", Category: CategoryHipDominant, Equipment: EquipmentBarbell,
		PrimaryMuscles: []string{"hamstrings", "glutes", "erectors"}, IsCompound: true, Difficulty: DifficultyAdvanced},
	{Name: "Romanian Deadlift", Category: CategoryHipDominant, Equipment: EquipmentBarbell,
		PrimaryMuscles: []string{"hamstrings", "glutes"}, IsCompound: true, Difficulty: DifficultyIntermediate},
	{Name: "Dumbbell Romanian Deadlift", Category: CategoryHipDominant, Equipment: EquipmentDumbbell,
		PrimaryMuscles: []string{"hamstrings", "glutes"}, IsCompound: true, Difficulty: DifficultyBeginner},
	{Name: "Barbell Hip Thrust", Category: CategoryHipDominant, Equipment: EquipmentBarbell,
		PrimaryMuscles: []string{"glutes"}, IsCompound: true, Difficulty: DifficultyIntermediate},
	{Name: "Glute Bridge", Category: CategoryHipDominant, Equipment: EquipmentBodyweight,
		PrimaryMuscles: []string{"glutes"}, IsCompound: false, Difficulty: DifficultyBeginner},

	// Horizontal push.
	{Name: "Barbell Bench Press", Category: CategoryHorizontalPush, Equipment: EquipmentBarbell,
		PrimaryMuscles: []string{"chest", "triceps", "front delts"}, IsCompound: true, Difficulty: DifficultyIntermediate},
	{Name: "Dumbbell Bench Press", Category: CategoryHorizontalPush, Equipment: EquipmentDumbbell,
		PrimaryMuscles: []string{"chest", "triceps"}, IsCompound: true, Difficulty: DifficultyBeginner},
	{Name: "Incline Dumbbell Press", Category: CategoryHorizontalPush, Equipment: EquipmentDumbbell,
		PrimaryMuscles: []string{"upper chest", "front delts"}, IsCompound: true, Difficulty: DifficultyIntermediate},
	{Name: "Machine Chest Press", Category: CategoryHorizontalPush, Equipment: EquipmentMachine,
		PrimaryMuscles: []string{"chest", "triceps"}, IsCompound: true, Difficulty: DifficultyBeginner},
	{Name: "Push-Up", Category: CategoryHorizontalPush, Equipment: EquipmentBodyweight,
		PrimaryMuscles: []string{"chest", "triceps", "core"}, IsCompound: true, Difficulty: DifficultyBeginner},

	// Vertical push.
	{Name: "Overhead Press", Category: CategoryVerticalPush, Equipment: EquipmentBarbell,
		PrimaryMuscles: []string{"shoulders", "triceps"}, IsCompound: true, Difficulty: DifficultyIntermediate},
	{Name: "Seated Dumbbell Shoulder Press", Category: CategoryVerticalPush, Equipment: EquipmentDumbbell,
		PrimaryMuscles: []string{"shoulders", "triceps"}, IsCompound: true, Difficulty: DifficultyBeginner},
	{Name: "Machine Shoulder Press", Category: CategoryVerticalPush, Equipment: EquipmentMachine,
		PrimaryMuscles: []string{"shoulders"}, IsCompound: true, Difficulty: DifficultyBeginner},
	{Name: "Pike Push-Up", Category: CategoryVerticalPush, Equipment: EquipmentBodyweight,
		PrimaryMuscles: []string{"shoulders", "triceps"}, IsCompound: true, Difficulty: DifficultyIntermediate},

	// Horizontal pull.
	{Name: "Barbell Row", Category: CategoryHorizontalPull, Equipment: EquipmentBarbell,
		PrimaryMuscles: []string{"lats", "rhomboids", "biceps"}, IsCompound: true, Difficulty: DifficultyIntermediate},
	{Name: "One-Arm Dumbbell Row", Category: CategoryHorizontalPull, Equipment: EquipmentDumbbell,
		PrimaryMuscles: []string{"lats", "biceps"}, IsCompound: true, Difficulty: DifficultyBeginner},
	{Name: "Seated Cable Row", Category: CategoryHorizontalPull, Equipment: EquipmentMachine,
		PrimaryMuscles: []string{"lats", "rhomboids"}, IsCompound: true, Difficulty: DifficultyBeginner},
	{Name: "Inverted Row", Category: CategoryHorizontalPull, Equipment: EquipmentBodyweight,
		PrimaryMuscles: []string{"lats", "biceps", "core"}, IsCompound: true, Difficulty: DifficultyIntermediate},

	// Vertical pull.
	{Name: "Pull-Up", Category: CategoryVerticalPull, Equipment: EquipmentBodyweight,
		PrimaryMuscles: []string{"lats", "biceps"}, IsCompound: true, Difficulty: DifficultyIntermediate},
	{Name: "Chin-Up", Category: CategoryVerticalPull, Equipment: EquipmentBodyweight,
		PrimaryMuscles: []string{"lats", "biceps"}, IsCompound: true, Difficulty: DifficultyIntermediate},
	{Name: "Lat Pulldown", Category: CategoryVerticalPull, Equipment: EquipmentMachine,
		PrimaryMuscles: []string{"lats", "biceps"}, IsCompound: true, Difficulty: DifficultyBeginner},

	// Single leg.
	{Name: "Bulgarian Split Squat", Category: CategorySingleLeg, Equipment: EquipmentDumbbell,
		PrimaryMuscles: []string{"quadriceps", "glutes"}, IsCompound: true, Difficulty: DifficultyIntermediate},
	{Name: "Walking Lunge", Category: CategorySingleLeg, Equipment: EquipmentDumbbell,
		PrimaryMuscles: []string{"quadriceps", "glutes"}, IsCompound: true, Difficulty: DifficultyBeginner},
	{Name: "Reverse Lunge", Category: CategorySingleLeg, Equipment: EquipmentBodyweight,
		PrimaryMuscles: []string{"quadriceps", "glutes"}, IsCompound: true, Difficulty: DifficultyBeginner},
	{Name: "Dumbbell Step-Up", Category: CategorySingleLeg, Equipment: EquipmentDumbbell,
		PrimaryMuscles: []string{"quadriceps", "glutes"}, IsCompound: true, Difficulty: DifficultyBeginner},

	// Accessory.
	{Name: "Barbell Curl", Category: CategoryAccessory, Equipment: EquipmentBarbell,
		PrimaryMuscles: []string{"biceps"}, IsCompound: false, Difficulty: DifficultyBeginner},
	{Name: "Dumbbell Lateral Raise", Category: CategoryAccessory, Equipment: EquipmentDumbbell,
		PrimaryMuscles: []string{"side delts"}, IsCompound: false, Difficulty: DifficultyBeginner},
	{Name: "Triceps Pushdown", Category: CategoryAccessory, Equipment: EquipmentMachine,
		PrimaryMuscles: []string{"triceps"}, IsCompound: false, Difficulty: DifficultyBeginner},

	// Core.
	{Name: "Plank", Category: CategoryCore, Equipment: EquipmentBodyweight,
		PrimaryMuscles: []string{"core"}, IsCompound: false, Difficulty: DifficultyBeginner},
	{Name: "Hanging Knee Raise", Category: CategoryCore, Equipment: EquipmentBodyweight,
		PrimaryMuscles: []string{"core", "hip flexors"}, IsCompound: false, Difficulty: DifficultyIntermediate},
	{Name: "Cable Crunch", Category: CategoryCore, Equipment: EquipmentMachine,
		PrimaryMuscles: []string{"core"}, IsCompound: false, Difficulty: DifficultyBeginner},
	{Name: "Ab Wheel Rollout", Category: CategoryCore, Equipment: EquipmentBodyweight,
		PrimaryMuscles: []string{"core", "lats"}, IsCompound: false, Difficulty: DifficultyAdvanced},
}
