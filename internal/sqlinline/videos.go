package sqlinline

const QInsertVideo = `--sql b26dcc87-36d0-4b4e-b201-a5bd0516eef8
insert into videos (id, user_id, job_id, prompt, url, delivery, aspect_ratio, resolution, created_at)
values ($1::uuid, $2::uuid, $3::uuid, $4, $5, $6, $7, $8, now())
returning created_at;
`

const QListVideosByUser = `--sql 52a68cad-ef82-413c-a736-89d8bf0f20cd
select id::text, user_id::text, job_id::text, prompt, url, delivery, aspect_ratio, resolution, created_at
from videos
where user_id = $1::uuid
order by created_at desc;
`
