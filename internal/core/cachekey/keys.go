package cachekey

// Cache keys are built here and nowhere else, so the write path that
// invalidates a key always constructs the exact string the read path
// stored it under.

// Entity returns the key for a single entity by id: "post_abc123".
func Entity(name, id string) string {
	return name + "_" + id
}

// Page1 returns the key for the first page of a default-ordered listing:
// "posts_page_1". Subsequent pages are never cached.
func Page1(plural string) string {
	return plural + "_page_1"
}

// Relation returns the key for a collection scoped to a parent:
// "reviews_user_<userID>".
func Relation(rel, parentID string) string {
	return rel + "_" + parentID
}

// Fixed keys for derived aggregate views. The following-statuses feed is
// deliberately absent: it is per caller, and no author-side write path
// can enumerate the follower feeds it would have to invalidate, so the
// feed is never cached.
const TrendingReels = "trending_reels"

// Per-entity helpers, so call sites never spell entity names inline.

func User(id string) string          { return Entity("user", id) }
func Post(id string) string          { return Entity("post", id) }
func Reel(id string) string          { return Entity("reel", id) }
func Review(id string) string        { return Entity("review", id) }
func Status(id string) string        { return Entity("status", id) }
func Notification(id string) string  { return Entity("notification", id) }
func Conversation(id string) string  { return Entity("conversation", id) }
func PortfolioCard(id string) string { return Entity("portfolio_card", id) }

func UsersPage1() string { return Page1("users") }
func PostsPage1() string { return Page1("posts") }
func ReelsPage1() string { return Page1("reels") }

func ReviewsOfUser(userID string) string          { return Relation("reviews_user", userID) }
func PortfolioOfUser(userID string) string        { return Relation("portfolio", userID) }
func PostsOfUser(userID string) string            { return Relation("posts_user", userID) }
func ReelsOfUser(userID string) string            { return Relation("reels_user", userID) }
func StatusesOfUser(userID string) string         { return Relation("statuses_user", userID) }
func NotificationsOfUser(userID string) string    { return Relation("notifications", userID) }
func ConversationsOfUser(userID string) string    { return Relation("conversations", userID) }
func MessagesOfConversation(convID string) string { return Relation("messages", convID) }
func CommentsOfReel(reelID string) string         { return Relation("comments_reel", reelID) }

// Saved returns the key for a user's saved items of one type:
// "saved_post_<userID>".
func Saved(itemType, userID string) string {
	return Relation("saved_"+itemType, userID)
}
