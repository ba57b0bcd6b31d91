package heat

// Option weights run from 1 (mild) to 5 (extreme).
type Option struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Weight int      `json:"-"`
	Notes  []string `json:"-"`
}

type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

var Questions = []Question{
	{
		ID:     "tolerance",
		Prompt: "How would you describe your spice tolerance?",
		Options: []Option{
			{ID: "none", Label: "Black pepper is plenty", Weight: 1},
			{ID: "mild", Label: "I like a gentle kick", Weight: 2},
			{ID: "medium", Label: "Jalapeños are my comfort zone", Weight: 3},
			{ID: "hot", Label: "Habaneros don't scare me", Weight: 4},
			{ID: "extreme", Label: "Bring on the superhots", Weight: 5},
		},
	},
	{
		ID:     "favorite_pepper",
		Prompt: "Which pepper do you reach for most?",
		Options: []Option{
			{ID: "poblano", Label: "Poblano", Weight: 1, Notes: []string{"earthy"}},
			{ID: "jalapeno", Label: "Jalapeño", Weight: 2, Notes: []string{"bright", "grassy"}},
			{ID: "cayenne", Label: "Cayenne", Weight: 3, Notes: []string{"sharp"}},
			{ID: "habanero", Label: "Habanero", Weight: 4, Notes: []string{"fruity"}},
			{ID: "reaper", Label: "Carolina Reaper", Weight: 5, Notes: []string{"fruity", "searing"}},
		},
	},
	{
		ID:     "usage",
		Prompt: "How do you mostly use hot sauce?",
		Options: []Option{
			{ID: "dip", Label: "A little on the side for dipping", Weight: 1},
			{ID: "drizzle", Label: "Drizzled over finished dishes", Weight: 2},
			{ID: "cooking", Label: "Cooked into marinades and sauces", Weight: 3},
			{ID: "everything", Label: "On absolutely everything", Weight: 4},
			{ID: "challenge", Label: "Straight from the bottle as a dare", Weight: 5},
		},
	},
	{
		ID:     "flavor",
		Prompt: "Which flavor profile do you enjoy most?",
		Options: []Option{
			{ID: "sweet", Label: "Sweet and tangy", Weight: 2, Notes: []string{"sweet", "tangy"}},
			{ID: "smoky", Label: "Smoky and deep", Weight: 3, Notes: []string{"smoky"}},
			{ID: "garlic", Label: "Savory garlic", Weight: 2, Notes: []string{"garlic", "savory"}},
			{ID: "citrus", Label: "Bright and citrusy", Weight: 3, Notes: []string{"citrus"}},
			{ID: "pure", Label: "Pure heat, no distractions", Weight: 5, Notes: []string{"clean heat"}},
		},
	},
	{
		ID:     "reaction",
		Prompt: "After a really spicy bite you usually...",
		Options: []Option{
			{ID: "water", Label: "Reach for milk immediately", Weight: 1},
			{ID: "sweat", Label: "Sweat a bit but keep going", Weight: 3},
			{ID: "more", Label: "Ask for more", Weight: 5},
		},
	},
	{
		ID:     "experience",
		Prompt: "How long have you been into hot sauce?",
		Options: []Option{
			{ID: "new", Label: "I'm just getting started", Weight: 1},
			{ID: "few_years", Label: "A few years", Weight: 3},
			{ID: "veteran", Label: "It's a lifestyle", Weight: 5},
		},
	},
}

func findOption(questionID, optionID string) (Option, bool) {
	for _, q := range Questions {
		if q.ID != questionID {
			continue
		}
		for _, o := range q.Options {
			if o.ID == optionID {
				return o, true
			}
		}
		return Option{}, false
	}
	return Option{}, false
}
