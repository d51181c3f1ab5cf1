package email

// Enqueuer is what request handlers need from the queue.
type Enqueuer interface {
	Enqueue(msgs ...Message) int
}

var _ Enqueuer = (*Queue)(nil)
