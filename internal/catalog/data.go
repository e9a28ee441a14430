// ABOUTME: Seed exercise definitions shipped with elevate.
// ABOUTME: Defined once at startup and never mutated.
package catalog

import "github.com/harperreed/elevate/internal/models"

var seedExercises = []models.Exercise{
	{
		ID:               "pull-up",
		Name:             "Pull Up",
		Category:         "Strength",
		PrimaryMuscles:   []string{"Lats", "Biceps"},
		SecondaryMuscles: []string{"Forearms", "Shoulders", "Traps"},
		Equipment:        []string{"Pull-up Bar"},
		Instructions:     "Hang from a pull-up bar with palms facing away from you, hands shoulder-width apart. Pull your body up until your chin clears the bar, then lower back down with control.",
		Image:            "images/pull-up.png",
	},
	{
		ID:               "lat-pulldown",
		Name:             "Lat Pulldown (Machine)",
		Category:         "Strength",
		PrimaryMuscles:   []string{"Lats"},
		SecondaryMuscles: []string{"Biceps", "Rhomboids", "Traps"},
		Equipment:        []string{"Lat Pulldown Machine"},
		Instructions:     "Sit at a lat pulldown machine with your thighs secured under the pads. Grab the bar with a wide grip and pull it down to your chest, then slowly release back up.",
		Image:            "images/lat-pulldown.png",
	},
	{
		ID:               "ez-curl",
		Name:             "EZ Bar Biceps Curl",
		Category:         "Strength",
		PrimaryMuscles:   []string{"Biceps"},
		SecondaryMuscles: []string{"Forearms"},
		Equipment:        []string{"EZ Bar"},
		Instructions:     "Stand with feet shoulder-width apart, holding an EZ bar with palms facing upward. Curl the bar toward your shoulders, keeping elbows close to your body.",
		Image:            "images/ez-curl.png",
	},
	{
		ID:               "bent-over-row",
		Name:             "Bent Over Row (Barbell)",
		Category:         "Strength",
		PrimaryMuscles:   []string{"Lats", "Rhomboids"},
		SecondaryMuscles: []string{"Biceps", "Traps", "Rear Delts"},
		Equipment:        []string{"Barbell"},
		Instructions:     "Bend at the hips with a slight knee bend, holding a barbell with hands shoulder-width apart. Pull the barbell to your lower chest, then lower it with control.",
		Image:            "images/bent-over-row.png",
	},
	{
		ID:               "rear-delt-fly",
		Name:             "Rear Delt Reverse Fly (Machine)",
		Category:         "Strength",
		PrimaryMuscles:   []string{"Rear Delts"},
		SecondaryMuscles: []string{"Traps", "Rhomboids"},
		Equipment:        []string{"Reverse Fly Machine"},
		Instructions:     "Sit facing a reverse fly machine, grasp the handles with your arms extended and pull them back and out to your sides, squeezing your shoulder blades together.",
		Image:            "images/rear-delt-fly.png",
	},
	{
		ID:               "deadlift",
		Name:             "Straight Leg Deadlift",
		Category:         "Strength",
		PrimaryMuscles:   []string{"Hamstrings"},
		SecondaryMuscles: []string{"Lower Back", "Glutes"},
		Equipment:        []string{"Barbell"},
		Instructions:     "Stand with feet hip-width apart, holding a barbell in front of your thighs. With slightly bent knees, hinge at your hips to lower the barbell while keeping your back straight.",
		Image:            "images/deadlift.png",
	},
}
