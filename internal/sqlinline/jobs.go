package sqlinline

const QInsertJob = `--sql 2aa9304b-3cc5-4f90-9a37-9c03a583a2ea
insert into jobs(id, entity_id, reference, description, vehicle_registration, estimated_hours, status, created_at, updated_at, reconciled_at)
values ($1::uuid, $2::uuid, $3::text, $4::text, $5::text, $6::float8, $7::text, now(), now(), now())
returning created_at, updated_at;
`

const QSelectJob = `--sql 14802b19-63b6-41f8-95c9-6d453b373af7
select id::text, entity_id::text, reference, description, vehicle_registration, estimated_hours, status, created_at, updated_at
from jobs
where id = $1::uuid;
`

const QSelectJobForUpdate = `--sql f9ab8130-6f47-4c7f-ad66-93f9d69c8ece
select id::text, entity_id::text, reference, description, vehicle_registration, estimated_hours, status, created_at, updated_at
from jobs
where id = $1::uuid
for update;
`

const QListJobsByEntity = `--sql 8819bda8-23cd-417d-b905-e2f320343a52
select id::text, entity_id::text, reference, description, vehicle_registration, estimated_hours, status, created_at, updated_at
from jobs
where entity_id = $1::uuid
order by created_at desc
limit $2::int;
`

const QUpdateJob = `--sql e48a043a-6840-42f4-8f00-fd899fcf833a
update jobs
set estimated_hours = $2::float8,
    status = $3::text,
    updated_at = now(),
    reconciled_at = now()
where id = $1::uuid
returning updated_at;
`

const QListJobsForReconcile = `--sql aca13466-dbf3-4f3a-a89a-4a1c6074e7d0
select id::text
from jobs
where status not in ('Invoiced', 'Closed')
order by reconciled_at asc nulls first
limit $1::int;
`
