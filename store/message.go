// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
)

// InsertMessage inserts the messages row. The messages_fts row is
// populated by the messages_fts_ai trigger in the same statement,
// keeping the Full-Text Index synchronously current within this
// unit-of-work (spec.md §4.6).
func (q *Queries) InsertMessage(ctx context.Context, m Message) (ids.MessageID, error) {
	var inReplyTo interface{}
	if !m.InReplyTo.Zero() {
		inReplyTo = int64(m.InReplyTo)
	}
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO messages (project_id, sender_id, subject, body, importance, ack_required, thread_id, in_reply_to, created_ts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(m.ProjectID), int64(m.SenderID), m.Subject, m.Body, string(m.Importance), boolToInt(m.AckRequired),
		string(m.ThreadID), inReplyTo, m.CreatedTs)
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, adkerrors.ErrPersistence.Wrap(err)
	}
	return ids.MessageID(id), nil
}

// InsertRecipient inserts one recipients row.
func (q *Queries) InsertRecipient(ctx context.Context, r Recipient) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO recipients (message_id, agent_id, kind) VALUES (?, ?, ?)`,
		int64(r.MessageID), int64(r.AgentID), string(r.Kind))
	if err != nil {
		return adkerrors.ErrPersistence.Wrap(err)
	}
	return nil
}

// GetMessage returns a message by id, or ErrMessageNotFound.
func (q *Queries) GetMessage(ctx context.Context, id ids.MessageID) (Message, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, project_id, sender_id, subject, body, importance, ack_required, thread_id, in_reply_to, created_ts
		 FROM messages WHERE id = ?`, int64(id))
	return scanMessage(row)
}

func scanMessage(row *sql.Row) (Message, error) {
	var m Message
	var mid, pid, sid int64
	var ack int
	var importance, thread string
	var inReplyTo sql.NullInt64
	if err := row.Scan(&mid, &pid, &sid, &m.Subject, &m.Body, &importance, &ack, &thread, &inReplyTo, &m.CreatedTs); err != nil {
		if err == sql.ErrNoRows {
			return Message{}, adkerrors.ErrMessageNotFound
		}
		return Message{}, adkerrors.ErrPersistence.Wrap(err)
	}
	m.ID = ids.MessageID(mid)
	m.ProjectID = ids.ProjectID(pid)
	m.SenderID = ids.AgentID(sid)
	m.Importance = Importance(importance)
	m.AckRequired = ack != 0
	m.ThreadID = ids.ThreadID(thread)
	if inReplyTo.Valid {
		m.InReplyTo = ids.MessageID(inReplyTo.Int64)
	}
	return m, nil
}

// SetMessageThread assigns thread_id for a just-inserted message whose
// thread could not be known until its id existed (spec.md §4.4 "derive
// thread_id as t_<new message id>").
func (q *Queries) SetMessageThread(ctx context.Context, id ids.MessageID, thread ids.ThreadID) error {
	_, err := q.db.ExecContext(ctx, `UPDATE messages SET thread_id = ? WHERE id = ?`, string(thread), int64(id))
	if err != nil {
		return adkerrors.ErrPersistence.Wrap(err)
	}
	return nil
}

// GetRecipient returns the recipients row for (message, agent).
func (q *Queries) GetRecipient(ctx context.Context, message ids.MessageID, agent ids.AgentID) (Recipient, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT message_id, agent_id, kind, read_ts, ack_ts FROM recipients WHERE message_id = ? AND agent_id = ?`,
		int64(message), int64(agent))
	var r Recipient
	var mid, aid int64
	var kind string
	var readTs, ackTs sql.NullInt64
	if err := row.Scan(&mid, &aid, &kind, &readTs, &ackTs); err != nil {
		if err == sql.ErrNoRows {
			return Recipient{}, adkerrors.ErrMessageNotFound.WithDetail("reason", "not a recipient")
		}
		return Recipient{}, adkerrors.ErrPersistence.Wrap(err)
	}
	r.MessageID = ids.MessageID(mid)
	r.AgentID = ids.AgentID(aid)
	r.Kind = RecipientKind(kind)
	if readTs.Valid {
		v := readTs.Int64
		r.ReadTs = &v
	}
	if ackTs.Valid {
		v := ackTs.Int64
		r.AckTs = &v
	}
	return r, nil
}

// ListRecipients returns every recipients row for message, in no
// particular order; used to derive a reply's inherited recipient set
// (spec.md §4.2 "reply(...) inherits recipients minus the sender").
func (q *Queries) ListRecipients(ctx context.Context, message ids.MessageID) ([]Recipient, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT message_id, agent_id, kind, read_ts, ack_ts FROM recipients WHERE message_id = ?`,
		int64(message))
	if err != nil {
		return nil, adkerrors.ErrPersistence.Wrap(err)
	}
	defer rows.Close()

	var out []Recipient
	for rows.Next() {
		var r Recipient
		var mid, aid int64
		var kind string
		var readTs, ackTs sql.NullInt64
		if err := rows.Scan(&mid, &aid, &kind, &readTs, &ackTs); err != nil {
			return nil, adkerrors.ErrPersistence.Wrap(err)
		}
		r.MessageID = ids.MessageID(mid)
		r.AgentID = ids.AgentID(aid)
		r.Kind = RecipientKind(kind)
		if readTs.Valid {
			v := readTs.Int64
			r.ReadTs = &v
		}
		if ackTs.Valid {
			v := ackTs.Int64
			r.AckTs = &v
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, adkerrors.ErrPersistence.Wrap(err)
	}
	return out, nil
}

// MarkRead sets read_ts if null; idempotent (spec.md §4.2).
func (q *Queries) MarkRead(ctx context.Context, message ids.MessageID, agent ids.AgentID, now int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE recipients SET read_ts = ? WHERE message_id = ? AND agent_id = ? AND read_ts IS NULL`,
		now, int64(message), int64(agent))
	if err != nil {
		return adkerrors.ErrPersistence.Wrap(err)
	}
	return nil
}

// Acknowledge sets ack_ts (and read_ts if still null); idempotent.
func (q *Queries) Acknowledge(ctx context.Context, message ids.MessageID, agent ids.AgentID, now int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE recipients SET ack_ts = COALESCE(ack_ts, ?), read_ts = COALESCE(read_ts, ?)
		 WHERE message_id = ? AND agent_id = ?`,
		now, now, int64(message), int64(agent))
	if err != nil {
		return adkerrors.ErrPersistence.Wrap(err)
	}
	return nil
}

// InboxRow is one check_inbox result row (spec.md §6 tool surface).
type InboxRow struct {
	Message Message
	Kind    RecipientKind
	ReadTs  *int64
	AckTs   *int64
}

// ListInbox returns messages addressed to agent (any recipient kind),
// newest first.
func (q *Queries) ListInbox(ctx context.Context, project ids.ProjectID, agent ids.AgentID, unreadOnly bool) ([]InboxRow, error) {
	query := `SELECT m.id, m.project_id, m.sender_id, m.subject, m.body, m.importance, m.ack_required,
	                 m.thread_id, m.in_reply_to, m.created_ts, r.kind, r.read_ts, r.ack_ts
	          FROM recipients r JOIN messages m ON m.id = r.message_id
	          WHERE m.project_id = ? AND r.agent_id = ?`
	if unreadOnly {
		query += ` AND r.read_ts IS NULL`
	}
	query += ` ORDER BY m.created_ts DESC, m.id DESC`

	rows, err := q.db.QueryContext(ctx, query, int64(project), int64(agent))
	if err != nil {
		return nil, adkerrors.ErrPersistence.Wrap(err)
	}
	defer rows.Close()

	var out []InboxRow
	for rows.Next() {
		var m Message
		var mid, pid, sid int64
		var ack int
		var importance, thread, kind string
		var inReplyTo, readTs, ackTs sql.NullInt64
		if err := rows.Scan(&mid, &pid, &sid, &m.Subject, &m.Body, &importance, &ack, &thread, &inReplyTo, &m.CreatedTs,
			&kind, &readTs, &ackTs); err != nil {
			return nil, adkerrors.ErrPersistence.Wrap(err)
		}
		m.ID, m.ProjectID, m.SenderID = ids.MessageID(mid), ids.ProjectID(pid), ids.AgentID(sid)
		m.Importance, m.AckRequired, m.ThreadID = Importance(importance), ack != 0, ids.ThreadID(thread)
		if inReplyTo.Valid {
			m.InReplyTo = ids.MessageID(inReplyTo.Int64)
		}
		row := InboxRow{Message: m, Kind: RecipientKind(kind)}
		if readTs.Valid {
			v := readTs.Int64
			row.ReadTs = &v
		}
		if ackTs.Valid {
			v := ackTs.Int64
			row.AckTs = &v
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListThreadMessages returns every message sharing thread_id within a
// project, ordered (created_ts, id) ascending (spec.md §5 ordering
// guarantees).
func (q *Queries) ListThreadMessages(ctx context.Context, project ids.ProjectID, thread ids.ThreadID) ([]Message, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, project_id, sender_id, subject, body, importance, ack_required, thread_id, in_reply_to, created_ts
		 FROM messages WHERE project_id = ? AND thread_id = ? ORDER BY created_ts ASC, id ASC`,
		int64(project), string(thread))
	if err != nil {
		return nil, adkerrors.ErrPersistence.Wrap(err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

// ListThreadIDs returns the distinct thread ids in a project, most
// recently active first (spec.md §4.6 Thread Index).
func (q *Queries) ListThreadIDs(ctx context.Context, project ids.ProjectID) ([]ids.ThreadID, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT thread_id FROM messages WHERE project_id = ? GROUP BY thread_id ORDER BY MAX(created_ts) DESC`,
		int64(project))
	if err != nil {
		return nil, adkerrors.ErrPersistence.Wrap(err)
	}
	defer rows.Close()

	var out []ids.ThreadID
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, adkerrors.ErrPersistence.Wrap(err)
		}
		out = append(out, ids.ThreadID(t))
	}
	return out, rows.Err()
}

// SearchMessages runs a prefix/token match over subject+body via the
// messages_fts virtual table, ranked by recency (spec.md §4.6: "Queries
// use prefix/token matching only; ranking is by recency tiebreak").
func (q *Queries) SearchMessages(ctx context.Context, project ids.ProjectID, query string, limit int) ([]Message, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT m.id, m.project_id, m.sender_id, m.subject, m.body, m.importance, m.ack_required,
		        m.thread_id, m.in_reply_to, m.created_ts
		 FROM messages_fts f JOIN messages m ON m.id = f.rowid
		 WHERE f.messages_fts MATCH ? AND m.project_id = ?
		 ORDER BY m.created_ts DESC, m.id DESC LIMIT ?`,
		query+"*", int64(project), limit)
	if err != nil {
		return nil, adkerrors.ErrPersistence.Wrap(err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]Message, error) {
	var out []Message
	for rows.Next() {
		var m Message
		var mid, pid, sid int64
		var ack int
		var importance, thread string
		var inReplyTo sql.NullInt64
		if err := rows.Scan(&mid, &pid, &sid, &m.Subject, &m.Body, &importance, &ack, &thread, &inReplyTo, &m.CreatedTs); err != nil {
			return nil, adkerrors.ErrPersistence.Wrap(err)
		}
		m.ID, m.ProjectID, m.SenderID = ids.MessageID(mid), ids.ProjectID(pid), ids.AgentID(sid)
		m.Importance, m.AckRequired, m.ThreadID = Importance(importance), ack != 0, ids.ThreadID(thread)
		if inReplyTo.Valid {
			m.InReplyTo = ids.MessageID(inReplyTo.Int64)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteMessageCascade removes a message and its recipients; used only
// by the dual-write protocol's compensating delete when the archive
// commit fails after the relational insert (spec.md §4.1 step 4).
func (q *Queries) DeleteMessageCascade(ctx context.Context, id ids.MessageID) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM recipients WHERE message_id = ?`, int64(id)); err != nil {
		return adkerrors.ErrPersistence.Wrap(err)
	}
	if _, err := q.db.ExecContext(ctx, `DELETE FROM messages_fts WHERE rowid = ?`, int64(id)); err != nil {
		return adkerrors.ErrPersistence.Wrap(err)
	}
	if _, err := q.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, int64(id)); err != nil {
		return adkerrors.ErrPersistence.Wrap(err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
