package cachekey

import "testing"

func TestKeyGrammar(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{Entity("post", "abc123"), "post_abc123"},
		{Page1("posts"), "posts_page_1"},
		{Relation("reviews_user", "u1"), "reviews_user_u1"},
		{Post("p1"), "post_p1"},
		{User("u1"), "user_u1"},
		{Reel("r1"), "reel_r1"},
		{PostsPage1(), "posts_page_1"},
		{ReelsPage1(), "reels_page_1"},
		{UsersPage1(), "users_page_1"},
		{ReviewsOfUser("u1"), "reviews_user_u1"},
		{Saved("post", "u1"), "saved_post_u1"},
		{MessagesOfConversation("c1"), "messages_c1"},
		{CommentsOfReel("r1"), "comments_reel_r1"},
		{TrendingReels, "trending_reels"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Fatalf("key mismatch: got %q want %q", c.got, c.want)
		}
	}
}

func TestKeyDeterminism(t *testing.T) {
	// The same logical entity must always produce the same key, and
	// distinct entities must never collide.
	if Post("1") != Post("1") {
		t.Fatal("key construction is not deterministic")
	}
	seen := map[string]string{}
	for name, k := range map[string]string{
		"post by id":     Post("1"),
		"user by id":     User("1"),
		"posts page":     PostsPage1(),
		"reviews of 1":   ReviewsOfUser("1"),
		"saved posts":    Saved("post", "1"),
		"saved reels":    Saved("reel", "1"),
		"conversation 1": Conversation("1"),
	} {
		if prev, dup := seen[k]; dup {
			t.Fatalf("key collision between %q and %q: %q", prev, name, k)
		}
		seen[k] = name
	}
}
