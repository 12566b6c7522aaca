package mongostore

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/abhisek/geodrill/internal/progress"
	"github.com/abhisek/geodrill/internal/quiz"
)

type scoreDoc struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	Identity   string        `bson:"identity"`
	Variant    string        `bson:"variant"`
	Score      int           `bson:"score"`
	BestStreak int           `bson:"best_streak"`
	UpdatedAt  time.Time     `bson:"updated_at"`
}

func (d scoreDoc) toScore() progress.Score {
	return progress.Score{
		Identity:   d.Identity,
		Variant:    quiz.Variant(d.Variant),
		Score:      d.Score,
		BestStreak: d.BestStreak,
		UpdatedAt:  d.UpdatedAt,
	}
}

type progressDoc struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Identity      string        `bson:"identity"`
	Variant       string        `bson:"variant"`
	ItemKey       string        `bson:"item_key"`
	CorrectCount  int           `bson:"correct_count"`
	WrongCount    int           `bson:"wrong_count"`
	LastAttemptAt time.Time     `bson:"last_attempt_at"`
}

func (d progressDoc) toItemProgress() progress.ItemProgress {
	return progress.ItemProgress{
		Variant:       quiz.Variant(d.Variant),
		ItemKey:       d.ItemKey,
		CorrectCount:  d.CorrectCount,
		WrongCount:    d.WrongCount,
		LastAttemptAt: d.LastAttemptAt,
	}
}

type attemptDoc struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	SessionID     string        `bson:"session_id"`
	Identity      string        `bson:"identity"`
	Variant       string        `bson:"variant"`
	ItemKey       string        `bson:"item_key"`
	Correct       bool          `bson:"correct"`
	CorrectAnswer string        `bson:"correct_answer,omitempty"`
	UserAnswer    string        `bson:"user_answer,omitempty"`
	CreatedAt     time.Time     `bson:"created_at"`
}

func newAttemptDoc(rec progress.AttemptRecord) attemptDoc {
	return attemptDoc{
		ID:            bson.NewObjectID(),
		SessionID:     rec.SessionID,
		Identity:      rec.Identity,
		Variant:       string(rec.Variant),
		ItemKey:       rec.ItemKey,
		Correct:       rec.Correct,
		CorrectAnswer: rec.CorrectAnswer,
		UserAnswer:    rec.UserAnswer,
		CreatedAt:     rec.CreatedAt.UTC(),
	}
}

func (d attemptDoc) toRecord() progress.AttemptRecord {
	return progress.AttemptRecord{
		SessionID:     d.SessionID,
		Identity:      d.Identity,
		Variant:       quiz.Variant(d.Variant),
		ItemKey:       d.ItemKey,
		Correct:       d.Correct,
		CorrectAnswer: d.CorrectAnswer,
		UserAnswer:    d.UserAnswer,
		CreatedAt:     d.CreatedAt,
	}
}

func scoreFilter(identity string, variant quiz.Variant) bson.M {
	return bson.M{"identity": identity, "variant": string(variant)}
}

func progressFilter(identity string, variant quiz.Variant, itemKey string) bson.M {
	return bson.M{"identity": identity, "variant": string(variant), "item_key": itemKey}
}

func scoreUpdate(score, bestStreak int, now time.Time) bson.M {
	return bson.M{
		"$set": bson.M{
			"score":      score,
			"updated_at": now,
		},
		"$max": bson.M{"best_streak": bestStreak},
	}
}

// progressUpdate increments exactly one counter. $inc on a missing field
// starts it from zero, so the same update works for the upsert insert.
func progressUpdate(correct bool, now time.Time) bson.M {
	var right, wrong int
	if correct {
		right = 1
	} else {
		wrong = 1
	}
	return bson.M{
		"$inc": bson.M{"correct_count": right, "wrong_count": wrong},
		"$set": bson.M{"last_attempt_at": now},
	}
}
