package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreLazyGet(t *testing.T) {
	s := NewStore()

	sess := s.Get(42)
	assert.Equal(t, StepIdle, sess.Step)
	assert.Equal(t, Draft{}, sess.Draft)
}

func TestStorePutGetClear(t *testing.T) {
	s := NewStore()

	s.Put(42, Session{Step: StepText, Draft: Draft{Owner: 42, Title: "заголовок"}})

	sess := s.Get(42)
	assert.Equal(t, StepText, sess.Step)
	assert.Equal(t, "заголовок", sess.Draft.Title)

	// other users are unaffected
	assert.Equal(t, StepIdle, s.Get(7).Step)

	s.Clear(42)
	assert.Equal(t, StepIdle, s.Get(42).Step)
	assert.Equal(t, Draft{}, s.Get(42).Draft)
}

func TestDraftFunctionalUpdates(t *testing.T) {
	d := Draft{Owner: 1}

	titled := d.WithTitle("оплатить счёт")
	texted := titled.WithText("не забыть детали")

	// each step produces a new value; the originals are untouched
	assert.Empty(t, d.Title)
	assert.Empty(t, titled.Text)
	assert.Equal(t, "оплатить счёт", texted.Title)
	assert.Equal(t, "не забыть детали", texted.Text)
	assert.Equal(t, int64(1), texted.Owner)
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		usr := int64(i % 4)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Put(usr, Session{Step: StepTitle, Draft: Draft{Owner: usr}})
				_ = s.Get(usr)
				s.Clear(usr)
			}
		}()
	}
	wg.Wait()

	for usr := int64(0); usr < 4; usr++ {
		assert.Equal(t, StepIdle, s.Get(usr).Step)
	}
}
