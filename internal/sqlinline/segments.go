package sqlinline

const QListJobSegments = `--sql 29979fc3-1181-445b-b62f-eb365b6ce9af
select id::text, job_id::text, duration, to_char(scheduled_date, 'YYYY-MM-DD'), scheduled_start_segment, allocated_lift, status, engineer_id
from job_segments
where job_id::text = any($1::text[])
order by job_id, position;
`

const QDeleteJobSegments = `--sql 25711a26-8e2f-46cc-8795-eb8ba3cef469
delete from job_segments
where job_id = $1::uuid;
`

const QInsertJobSegment = `--sql eaf7d2d7-b004-43d7-bca4-2021d9720f7e
insert into job_segments(id, job_id, position, duration, scheduled_date, scheduled_start_segment, allocated_lift, status, engineer_id)
values ($1::uuid, $2::uuid, $3::int, $4::float8, nullif($5::text, '')::date, $6::int, $7::text, $8::text, $9::text);
`
