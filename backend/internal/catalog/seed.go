package catalog

// Options lists the seeded interest names for each category.
var Options = map[Category][]string{
	Music: {
		"Rock", "Pop", "Jazz", "Classical", "Electronic", "Reggaeton", "Country", "R&B", "Metal",
	},
	Entertainment: {
		"Action Movies", "Comedy", "Drama", "Sci-Fi", "Romance", "Documentary", "Anime", "Horror", "Thriller",
	},
	Sports: {
		"Football", "Basketball", "Tennis", "Swimming", "Running", "Gym", "Yoga", "Cycling", "Volleyball",
	},
	Hobbies: {
		"Reading", "Gaming", "Cooking", "Photography", "Traveling", "Art", "Music", "Dancing", "Writing",
	},
	RelationshipValues: {
		"Trust and Honesty", "Communication", "Shared Interests", "Independence", "Emotional Support",
	},
	WeekendPreferences: {
		"Outdoor Adventures", "Relaxing at Home", "Social Events", "Cultural Activities", "Sports and Exercise",
	},
	ConversationTypes: {
		"Deep Philosophical", "Light and Fun", "Intellectual Debates", "Emotional Sharing", "Practical Everyday",
	},
	SocialStyle: {
		"Very Social Butterfly", "Selective Socializer", "Introverted", "Balanced",
	},
	RelationshipType: {
		"Serious Long-term", "Casual Dating", "Friendship First", "Open to Possibilities",
	},
}

// Ref names a single interest by category and name.
type Ref struct {
	Category Category
	Name     string
}

// ID returns the interest's node id.
func (r Ref) ID() string {
	return InterestID(r.Category, r.Name)
}

// Link is a symmetric CompatibleWith pair between two distinct interests.
type Link struct {
	A, B Ref
}

// Compatibilities is the seeded CompatibleWith relation: cross-category and
// within-category taste correlations.
var Compatibilities = []Link{
	{Ref{Music, "Rock"}, Ref{Music, "Metal"}},
	{Ref{Music, "Jazz"}, Ref{Music, "Classical"}},
	{Ref{Music, "Jazz"}, Ref{Music, "R&B"}},
	{Ref{Music, "Pop"}, Ref{Music, "Reggaeton"}},
	{Ref{Music, "Electronic"}, Ref{Hobbies, "Dancing"}},
	{Ref{Music, "Reggaeton"}, Ref{Hobbies, "Dancing"}},
	{Ref{Music, "Classical"}, Ref{Hobbies, "Reading"}},
	{Ref{Entertainment, "Sci-Fi"}, Ref{Hobbies, "Gaming"}},
	{Ref{Entertainment, "Anime"}, Ref{Hobbies, "Gaming"}},
	{Ref{Entertainment, "Documentary"}, Ref{Hobbies, "Reading"}},
	{Ref{Entertainment, "Horror"}, Ref{Entertainment, "Thriller"}},
	{Ref{Entertainment, "Romance"}, Ref{Entertainment, "Drama"}},
	{Ref{Sports, "Football"}, Ref{Sports, "Basketball"}},
	{Ref{Sports, "Running"}, Ref{Sports, "Cycling"}},
	{Ref{Sports, "Gym"}, Ref{Sports, "Running"}},
	{Ref{Sports, "Yoga"}, Ref{Sports, "Swimming"}},
	{Ref{Sports, "Cycling"}, Ref{WeekendPreferences, "Outdoor Adventures"}},
	{Ref{Hobbies, "Reading"}, Ref{Hobbies, "Writing"}},
	{Ref{Hobbies, "Traveling"}, Ref{Hobbies, "Photography"}},
	{Ref{Hobbies, "Art"}, Ref{WeekendPreferences, "Cultural Activities"}},
	{Ref{Hobbies, "Cooking"}, Ref{WeekendPreferences, "Relaxing at Home"}},
	{Ref{ConversationTypes, "Deep Philosophical"}, Ref{ConversationTypes, "Intellectual Debates"}},
	{Ref{SocialStyle, "Very Social Butterfly"}, Ref{WeekendPreferences, "Social Events"}},
	{Ref{SocialStyle, "Introverted"}, Ref{WeekendPreferences, "Relaxing at Home"}},
	{Ref{RelationshipValues, "Communication"}, Ref{ConversationTypes, "Emotional Sharing"}},
	{Ref{RelationshipType, "Serious Long-term"}, Ref{RelationshipValues, "Trust and Honesty"}},
}
